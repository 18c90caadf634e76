// Package pkg provides shared utilities for the softshift driver.
//
// This package contains common functionality used by the chain driver, the
// output line adapters and the command-line tool, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for chain and line errors
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with driver-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentDevice, "chain flushed", "registers", 3)
//
// # Errors
//
// Common errors are defined as sentinel values and wrapped with the
// offending index or length at the call site:
//
//	if errors.Is(err, pkg.ErrOutOfRange) {
//	    // Handle bad register index
//	}
package pkg
