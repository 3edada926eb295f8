package main

import (
	"errors"
	"os"

	cssurl "github.com/alnah/go-cssurl"
	"github.com/alnah/go-cssurl/internal/config"
)

// Exit codes for the cssurl CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents resolved
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, copy failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidAlias) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, cssurl.ErrInvalidPublicPath) ||
		errors.Is(err, cssurl.ErrInvalidBaseDir) ||
		errors.Is(err, cssurl.ErrInvalidAlias) ||
		errors.Is(err, cssurl.ErrInvalidAliasMatch) ||
		errors.Is(err, cssurl.ErrUnknownHashAlgorithm) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidAliasFlag) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrOutputCollision) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, cssurl.ErrReadAsset) ||
		errors.Is(err, cssurl.ErrDetectMIME) ||
		errors.Is(err, cssurl.ErrCreateDir) ||
		errors.Is(err, cssurl.ErrCopyAsset) ||
		errors.Is(err, cssurl.ErrCleanOutput) ||
		errors.Is(err, ErrNoCSSFiles) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteCSS) ||
		errors.Is(err, ErrBatchFailed) {
		return ExitIO
	}

	return ExitGeneral
}

func isConfigNotFound(err error) bool {
	return errors.Is(err, config.ErrConfigNotFound)
}

func isPermission(err error) bool {
	return errors.Is(err, os.ErrPermission)
}

func isOutputDirError(err error) bool {
	return errors.Is(err, cssurl.ErrCreateDir) || errors.Is(err, cssurl.ErrCleanOutput)
}
