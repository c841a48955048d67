package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SKyletoft/lang-experiment/pkg/driver"
)

const defaultHistoryFile = ".lang_history"

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", driver.ManifestName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := findManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func resolveLangHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("LANG_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve LANG_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".lang"), nil
}

// resolveHistoryPath places the REPL history in the user's home directory
// unless the manifest names an absolute path.
func resolveHistoryPath(manifest *driver.Manifest) string {
	name := defaultHistoryFile
	if manifest != nil && manifest.Settings.History != "" {
		name = manifest.Settings.History
	}
	if filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}

func lockfilePath(manifest *driver.Manifest) string {
	return filepath.Join(manifest.Dir(), driver.LockfileName)
}

func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	if manifest == nil {
		return nil, nil
	}
	lock, err := driver.LoadLockfile(lockfilePath(manifest))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if len(manifest.Dependencies) > 0 {
				return nil, fmt.Errorf("%s missing for %q; run `lang deps install`", driver.LockfileName, manifest.Name)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return lock, nil
}

// dependencyFiles lists the pinned source files of every manifest dependency
// in dependency-name order.
func dependencyFiles(manifest *driver.Manifest, lock *driver.Lockfile, cacheDir string) ([]string, error) {
	var files []string
	for _, name := range manifest.DependencyNames() {
		pkg := lock.Find(name)
		if pkg == nil {
			return nil, fmt.Errorf("dependency %q is not locked; run `lang deps install`", name)
		}
		dir, err := lockedPackageDir(manifest, pkg, cacheDir)
		if err != nil {
			return nil, err
		}
		for _, file := range pkg.Files {
			files = append(files, filepath.Join(dir, filepath.FromSlash(file)))
		}
	}
	return files, nil
}

func lockedPackageDir(manifest *driver.Manifest, pkg *driver.LockedPackage, cacheDir string) (string, error) {
	if dir, ok := pkg.LocalPath(); ok {
		if filepath.IsAbs(dir) {
			return dir, nil
		}
		return filepath.Join(manifest.Dir(), dir), nil
	}
	if _, ok := pkg.GitURL(); ok {
		return gitCheckoutDir(cacheDir, pkg.Name, pkg.Version), nil
	}
	return "", fmt.Errorf("dependency %q has unsupported source %q", pkg.Name, pkg.Source)
}
