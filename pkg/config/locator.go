package config

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// supported lists the auto-detected filenames in priority order, paired with
// the repository constructor for each format.
var supported = []struct {
	name  string
	build func(source string, opts ...Option) (Repository, error)
}{
	{"settings.ini", func(source string, opts ...Option) (Repository, error) { return NewIniFile(source, opts...) }},
	{".env", func(source string, opts ...Option) (Repository, error) { return NewEnvFile(source, opts...) }},
}

// Locator searches ancestor directories for a supported configuration file
// and builds the matching Resolver lazily, at most once per instance.
//
// The memoization is not thread-safe: concurrent first use races to build the
// Resolver. Callers needing concurrency safety should call Resolver once
// before spawning goroutines.
type Locator struct {
	opts     options
	resolved *Resolver
}

// NewLocator creates a Locator. Without WithSearchPath the search starts at
// the directory reported by the path provider, which defaults to the process
// working directory.
func NewLocator(opts ...Option) *Locator {
	return &Locator{opts: newOptions(opts)}
}

// Get resolves key with the same semantics as Resolver.Get, building the
// memoized Resolver on first call.
func (l *Locator) Get(key string, opts ...GetOption) (any, error) {
	resolver, err := l.Resolver()
	if err != nil {
		return nil, err
	}
	return resolver.Get(key, opts...)
}

// Resolver returns the memoized Resolver, building it on first call. An error
// parsing a detected file surfaces here and is not memoized, so a later call
// retries.
func (l *Locator) Resolver() (*Resolver, error) {
	if l.resolved != nil {
		return l.resolved, nil
	}
	repository, err := l.locate()
	if err != nil {
		return nil, err
	}
	l.resolved = NewResolver(repository)
	return l.resolved, nil
}

// locate walks from the starting directory upward and builds the repository
// for the first supported file found. I/O errors during the existence checks
// are treated as "not found"; reaching the filesystem root without a match
// falls back to the Empty repository.
func (l *Locator) locate() (Repository, error) {
	start := l.opts.searchPath
	if start == "" {
		dir, err := l.opts.pathProvider()
		if err != nil {
			log.Debug().Err(err).Msg("Cannot determine search path, using empty repository")
			return Empty{}, nil
		}
		start = dir
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		log.Debug().Err(err).Str("path", start).Msg("Cannot resolve search path, using empty repository")
		return Empty{}, nil
	}

	for {
		for _, candidate := range supported {
			path := filepath.Join(dir, candidate.name)
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			log.Debug().Str("file", path).Msg("Using configuration file")
			return candidate.build(path, WithEncoding(l.opts.encoding))
		}
		parent := filepath.Dir(dir)
		if parent == dir || filepath.Dir(parent) == parent {
			// The parent is the filesystem root: stop without inspecting it.
			break
		}
		dir = parent
	}
	log.Debug().Str("start", start).Msg("No configuration file found, using empty repository")
	return Empty{}, nil
}

// Default is the process-wide Locator used by the package-level Get. Its
// first use must not race with concurrent Get calls; pre-warm it with
// Default.Resolver when in doubt.
var Default = NewLocator()

// Get resolves key through the process-wide Default Locator.
func Get(key string, opts ...GetOption) (any, error) {
	return Default.Get(key, opts...)
}
