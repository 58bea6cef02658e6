// Package config implements a layered configuration-value resolver.
// Values are looked up, in priority order, in the process environment and in a
// single backing repository (a .env file, a settings.ini file, or a directory
// of secret files), then optionally cast to a target type.
//
// The usual entry point is the Locator, which walks parent directories to find
// a supported configuration file and builds the matching Resolver lazily:
//
//	locator := config.NewLocator()
//	debug, err := locator.Get("DEBUG", config.WithDefault("false"), config.WithCast(config.Bool))
//
// A process-wide Locator is available through the package-level Get function.
package config

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding"
)

// PathProvider supplies the directory a Locator starts its search from when no
// explicit search path was configured. The default provider returns the
// process working directory.
type PathProvider func() (string, error)

type (
	// Option configures a repository constructor or a Locator.
	Option func(*options)

	options struct {
		encoding     encoding.Encoding
		searchPath   string
		pathProvider PathProvider
	}
)

// WithEncoding sets the character encoding used to read backing files.
// A nil encoding (the default) reads files as UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithSearchPath sets the directory a Locator starts searching from instead of
// consulting its path provider. Ignored by repository constructors.
func WithSearchPath(path string) Option {
	return func(o *options) {
		o.searchPath = path
	}
}

// WithPathProvider replaces the Locator's default starting-directory provider
// (the process working directory). Ignored by repository constructors.
func WithPathProvider(provider PathProvider) Option {
	return func(o *options) {
		o.pathProvider = provider
	}
}

func newOptions(opts []Option) options {
	o := options{pathProvider: os.Getwd}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// undefinedType marks "no default supplied". It is deliberately distinct from
// nil so that nil remains a legitimate default value.
type undefinedType struct{}

type (
	// GetOption configures a single Get call.
	GetOption func(*getOptions)

	getOptions struct {
		def  any
		cast Cast
	}
)

// WithDefault supplies a fallback value used when the key is defined neither
// in the environment nor in the repository. A non-string default is returned
// to the caller unchanged, bypassing any cast.
func WithDefault(def any) GetOption {
	return func(o *getOptions) {
		o.def = def
	}
}

// WithCast applies a transformation to the raw string value before returning
// it. Cast errors are propagated to the caller.
func WithCast(cast Cast) GetOption {
	return func(o *getOptions) {
		o.cast = cast
	}
}

// UndefinedError is returned by Get when a key has no environment value, no
// repository value and no default.
type UndefinedError struct {
	Key string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s not found. Declare it as envvar or define a default value.", e.Key)
}

// Resolver merges environment-variable lookup with a single Repository and
// applies default and cast logic. Instances are read-only after construction.
type Resolver struct {
	repository Repository
}

// NewResolver creates a Resolver backed by the given repository.
func NewResolver(repository Repository) *Resolver {
	return &Resolver{repository: repository}
}

// Repository returns the backing repository.
func (r *Resolver) Repository() Repository {
	return r.repository
}

// Get returns the value for key. The process environment wins over the
// repository; when both miss, the default supplied with WithDefault is used.
// Without a default the call fails with *UndefinedError.
func (r *Resolver) Get(key string, opts ...GetOption) (any, error) {
	o := getOptions{def: undefinedType{}}
	for _, opt := range opts {
		opt(&o)
	}

	var value string
	if env, ok := os.LookupEnv(key); ok {
		value = env
	} else if r.repository.Contains(key) {
		repoValue, err := r.repository.Get(key)
		if err != nil {
			return nil, err
		}
		value = repoValue
	} else {
		if _, missing := o.def.(undefinedType); missing {
			return nil, &UndefinedError{Key: key}
		}
		str, ok := o.def.(string)
		if !ok {
			// Non-string defaults short-circuit: they are returned as-is,
			// even when a cast was requested.
			return o.def, nil
		}
		value = str
	}

	if o.cast == nil {
		return value, nil
	}
	return o.cast(value)
}
