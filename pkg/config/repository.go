package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrKeyNotFound reports a direct repository lookup for an absent key. It is
// distinct from *UndefinedError: the Resolver uses it internally to decide
// fallback to the default, and callers querying a Repository directly observe
// it as-is.
var ErrKeyNotFound = errors.New("key not found")

func notFound(key string) error {
	return errors.Wrapf(ErrKeyNotFound, "%q", key)
}

// Repository is a single backing key-value source behind a uniform lookup
// interface. Implementations treat their backing store as immutable after
// construction; there is no write-back.
//
// Contains also reports true for keys present in the process environment so
// that repositories can be inspected directly, but Get never consults the
// environment.
type Repository interface {
	Contains(key string) bool
	Get(key string) (string, error)
}

// Empty is the Repository used when no backing file could be located. It
// misses every key.
type Empty struct{}

// Contains always returns false.
func (Empty) Contains(string) bool {
	return false
}

// Get always fails with ErrKeyNotFound.
func (Empty) Get(key string) (string, error) {
	return "", notFound(key)
}

func inEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// readFile reads the whole file, decoding it with enc when one is set.
func readFile(path string, enc encoding.Encoding) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- callers choose the backing file deliberately
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
