package main

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment and id generation.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	NewID   func() string // id for jobs given on the command line
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewID:   uuid.NewString,
	}
}

// getenv tolerates a partially filled Environment in tests.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Environment) environ() []string {
	if e.Environ == nil {
		return nil
	}
	return e.Environ()
}

func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Environment) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}
