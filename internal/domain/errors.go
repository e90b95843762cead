package domain

import "errors"

var (
	// ErrCollectionUnknown signals a collection name outside the static catalog.
	ErrCollectionUnknown = errors.New("unknown collection")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrMissingCredentials signals absent provider credentials at startup.
	ErrMissingCredentials = errors.New("missing provider credentials")
)
