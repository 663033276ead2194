package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrUnsupportedLanguage is returned by the lexical normalizer when no
	// rule set exists for the requested language code.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidExternalResponse marks a disambiguation reply that could not
	// be decoded as JSON.
	ErrInvalidExternalResponse = errors.New("invalid response format")

	// ErrNoExternalResponse marks an empty reply from the tokenizer service.
	ErrNoExternalResponse = errors.New("no response from tokenizer")
)
