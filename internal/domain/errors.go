package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product has the requested id
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when required input is missing or empty
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrVectorization is returned when a TF-IDF vector space cannot be built
	ErrVectorization = errors.New("cannot vectorize corpus")

	// ErrPersistence is returned when the catalog file cannot be read or written
	ErrPersistence = errors.New("catalog persistence failed")

	// ErrExternalService is returned when the generative-language service fails
	ErrExternalService = errors.New("generative language service request failed")

	// ErrServiceNotConfigured is returned when the generative-language service has no API key
	ErrServiceNotConfigured = errors.New("generative language service not configured")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
