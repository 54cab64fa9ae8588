//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals cancel an in-flight render.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
