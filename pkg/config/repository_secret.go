package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SecretDir retrieves keys from a directory of secret files, e.g. Docker
// swarm or Kubernetes secrets: the filename is the key and the full file
// content, untrimmed, is the value. The directory is read non-recursively at
// construction; subdirectories are skipped.
type SecretDir struct {
	data map[string]string
	keys []string
}

// NewSecretDir reads every file in the given directory.
func NewSecretDir(source string, opts ...Option) (*SecretDir, error) {
	o := newOptions(opts)
	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read secrets directory %q", source)
	}

	repo := &SecretDir{data: make(map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := readFile(filepath.Join(source, entry.Name()), o.encoding)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read secret file %q", entry.Name())
		}
		repo.data[entry.Name()] = content
		repo.keys = append(repo.keys, entry.Name())
	}
	log.Debug().Int("secrets", len(repo.data)).Str("dir", source).Msg("Loaded secret files")
	return repo, nil
}

// Contains reports whether key names a secret file or a process environment
// variable.
func (r *SecretDir) Contains(key string) bool {
	if inEnv(key) {
		return true
	}
	_, ok := r.data[key]
	return ok
}

// Get returns the raw content of the secret file named key, or
// ErrKeyNotFound when no such file was present.
func (r *SecretDir) Get(key string) (string, error) {
	value, ok := r.data[key]
	if !ok {
		return "", notFound(key)
	}
	return value, nil
}

// Keys returns the secret file names in directory order.
func (r *SecretDir) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}
