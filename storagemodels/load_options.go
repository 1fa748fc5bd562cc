/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "time"

// LoadOptions configures how durable stores read the persisted cells back.
type LoadOptions struct {
	PageSize        int32              // Items per backend page (default: 100)
	MaxRetries      int                // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration      // Backoff between retries (default: 1s)
	ProgressHandler func(LoadProgress) // Optional progress callback
}

// LoadProgress tracks loading progress
type LoadProgress struct {
	ItemsLoaded int64     // Total items decoded so far
	PagesLoaded int       // Total pages read so far
	StartTime   time.Time // When loading started
}

// LoadOption is a functional option for configuring loads
type LoadOption func(*LoadOptions)

// DefaultLoadOptions returns default load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		PageSize:     100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}
}

// WithPageSize sets the backend page size
func WithPageSize(size int32) LoadOption {
	return func(opts *LoadOptions) {
		opts.PageSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) LoadOption {
	return func(opts *LoadOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) LoadOption {
	return func(opts *LoadOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(LoadProgress)) LoadOption {
	return func(opts *LoadOptions) {
		opts.ProgressHandler = handler
	}
}
