//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package main

func stdinIsTerminal() bool { return false }
