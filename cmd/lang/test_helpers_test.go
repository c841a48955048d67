package main

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(rel, ".git/") {
			return nil
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Lang CLI",
			Email: "lang@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%s): %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}

// captureCLI runs the CLI with stdin fed from input and returns the exit
// code with everything written to stdout and stderr.
func captureCLI(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()

	stdinPath := filepath.Join(t.TempDir(), "stdin")
	writeFile(t, stdinPath, input)
	in, err := os.Open(stdinPath)
	if err != nil {
		t.Fatalf("open stdin: %v", err)
	}
	defer in.Close()

	stdin, stdout, stderr := os.Stdin, os.Stdout, os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdin = in
	os.Stdout = wOut
	os.Stderr = wErr

	outCh := make(chan []byte)
	errCh := make(chan []byte)
	go func() { data, _ := io.ReadAll(rOut); outCh <- data }()
	go func() { data, _ := io.ReadAll(rErr); errCh <- data }()

	code := run(args)

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdin, os.Stdout, os.Stderr = stdin, stdout, stderr

	outBytes := <-outCh
	errBytes := <-errCh
	_ = rOut.Close()
	_ = rErr.Close()
	return code, string(outBytes), string(errBytes)
}
