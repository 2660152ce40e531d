// Package debug implements the WAYLAND_DEBUG message trace.
package debug

import (
	"log"
	"os"
	"strconv"
)

var logger *log.Logger

func init() {
	debugLevel, err := strconv.ParseInt(os.Getenv("WAYLAND_DEBUG"), 10, 0)
	if err != nil {
		return
	}
	if debugLevel > 0 {
		logger = log.New(os.Stderr, "[wayland] ", log.Lmicroseconds)
	}
}

// Enabled reports whether tracing was turned on by the environment.
// Callers use it to skip building expensive trace strings.
func Enabled() bool {
	return logger != nil
}

func Printf(str string, args ...any) {
	if logger == nil {
		return
	}
	logger.Printf(str, args...)
}
