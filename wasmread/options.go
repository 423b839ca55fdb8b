package wasmread

import "go.uber.org/zap"

type options struct {
	log        *zap.Logger
	strictUTF8 bool
	maxSize    int
}

type Option func(*options)

// WithLogger sets the logger that receives a debug record for each section.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStrictUTF8 makes malformed UTF-8 in names fail with ErrInvalidUTF8
// instead of being replaced with U+FFFD.
func WithStrictUTF8(strict bool) Option {
	return func(o *options) {
		o.strictUTF8 = strict
	}
}

// WithMaxSize rejects inputs longer than n bytes with ErrInputTooLarge. Zero
// means no limit.
func WithMaxSize(n int) Option {
	return func(o *options) {
		o.maxSize = n
	}
}
