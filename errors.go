package cssurl

import "errors"

// Sentinel errors for library operations.
var (
	// Resolution-time I/O errors. These abort the current document.
	ErrReadAsset   = errors.New("failed to read asset")
	ErrDetectMIME  = errors.New("failed to detect asset content type")
	ErrCreateDir   = errors.New("failed to create output directory")
	ErrCopyAsset   = errors.New("failed to copy asset")
	ErrCleanOutput = errors.New("failed to clean output directory")

	// Configuration errors.
	ErrInvalidPublicPath    = errors.New("invalid public path")
	ErrInvalidBaseDir       = errors.New("invalid base directory")
	ErrInvalidAlias         = errors.New("invalid alias")
	ErrInvalidAliasMatch    = errors.New("invalid alias match mode")
	ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")
)
