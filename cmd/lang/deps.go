package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SKyletoft/lang-experiment/pkg/driver"
)

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "lang deps requires a subcommand (install)")
		return 1
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "lang deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return 1
		}
		return runDepsInstall()
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return 1
	}
}

func runDepsInstall() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}
	manifestPath, err := findManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate %s: %v\n", driver.ManifestName, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return 1
	}
	cacheDir, err := resolveLangHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve LANG_HOME: %v\n", err)
		return 1
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Dependencies: %d\n", len(manifest.Dependencies))
	fmt.Fprintf(os.Stdout, "Cache directory: %s\n", cacheDir)

	lockPath := lockfilePath(manifest)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if lock.Root != manifest.Name {
			fmt.Fprintf(os.Stderr, "lockfile root %q does not match manifest name %q\n", lock.Root, manifest.Name)
			return 1
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
		lockCreated = true
	default:
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return 1
	}
	lock.Path = lockPath
	lock.Tool = cliToolVersion

	installer := newDependencyInstaller(manifest, cacheDir)
	changed, logs, err := installer.Install(lock)
	for _, line := range logs {
		fmt.Fprintln(os.Stdout, line)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve dependencies: %v\n", err)
		return 1
	}

	if changed || lockCreated {
		action := "Updated"
		if lockCreated {
			action = "Created"
		}
		if err := driver.WriteLockfile(lock, lockPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "%s %s: %s\n", action, driver.LockfileName, lock.Path)
	} else {
		fmt.Fprintf(os.Stdout, "%s already up to date: %s\n", driver.LockfileName, lock.Path)
	}

	fmt.Fprintln(os.Stdout, "Dependencies installed.")
	return 0
}

type dependencyInstaller struct {
	manifest *driver.Manifest
	git      *gitFetcher
}

func newDependencyInstaller(manifest *driver.Manifest, cacheDir string) *dependencyInstaller {
	return &dependencyInstaller{
		manifest: manifest,
		git:      newGitFetcher(cacheDir),
	}
}

// Install pins every manifest dependency into lock and drops packages the
// manifest no longer names.
func (i *dependencyInstaller) Install(lock *driver.Lockfile) (bool, []string, error) {
	changed := false
	var logs []string
	names := i.manifest.DependencyNames()
	for _, name := range names {
		spec := i.manifest.Dependencies[name]
		var (
			pkg *driver.LockedPackage
			err error
		)
		if spec.IsGit() {
			pkg, err = i.git.Fetch(name, spec)
		} else {
			pkg, err = i.installPath(name, spec)
		}
		if err != nil {
			return false, logs, fmt.Errorf("dependency %q: %w", name, err)
		}
		if lock.Upsert(pkg) {
			changed = true
			logs = append(logs, fmt.Sprintf("Locked %s %s (%s)", pkg.Name, pkg.Version, pkg.Source))
		} else {
			logs = append(logs, fmt.Sprintf("Unchanged %s %s", pkg.Name, pkg.Version))
		}
	}
	if lock.Prune(names) {
		changed = true
		logs = append(logs, "Removed packages no longer listed in the manifest")
	}
	return changed, logs, nil
}

func (i *dependencyInstaller) installPath(name string, spec *driver.DependencySpec) (*driver.LockedPackage, error) {
	dir := spec.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(i.manifest.Dir(), dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", dir)
	}
	checksum, err := filesChecksum(dir, spec.Files)
	if err != nil {
		return nil, err
	}
	return &driver.LockedPackage{
		Name:     sanitizeName(name),
		Version:  "local",
		Source:   driver.PathSource(spec.Path),
		Checksum: checksum,
		Files:    append([]string(nil), spec.Files...),
	}, nil
}
