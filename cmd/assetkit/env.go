package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-assetkit/internal/sass"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	LookPath    func(file string) (string, error)
	SassVersion func(binary string) (string, error)

	// Compiler, when set, replaces the Dart Sass pool.
	Compiler sass.Compiler

	// plainLogs drops timestamps so test output is stable.
	plainLogs bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LookPath:    exec.LookPath,
		SassVersion: sass.Version,
	}
}
