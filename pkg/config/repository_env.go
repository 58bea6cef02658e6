package config

import (
	"strings"

	"github.com/pkg/errors"
)

// EnvFile retrieves keys from a .env style file: one KEY=VALUE pair per line,
// blank lines and #-comments ignored. The whole file is read into memory at
// construction. No interpolation is performed for this format.
type EnvFile struct {
	data map[string]string
	keys []string
}

// NewEnvFile reads and parses the env file at source.
func NewEnvFile(source string, opts ...Option) (*EnvFile, error) {
	o := newOptions(opts)
	content, err := readFile(source, o.encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read env file %q", source)
	}

	repo := &EnvFile{data: make(map[string]string)}
	// The whole file is already in memory; splitting avoids any line-length
	// limit a buffered scanner would impose.
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			// Strip exactly one matching pair of outer quotes. No escape
			// processing happens inside the quotes.
			first, last := value[0], value[len(value)-1]
			if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
				value = value[1 : len(value)-1]
			}
		}
		if _, seen := repo.data[key]; !seen {
			repo.keys = append(repo.keys, key)
		}
		// Later duplicates overwrite earlier ones.
		repo.data[key] = value
	}

	return repo, nil
}

// Contains reports whether key is defined in the file or in the process
// environment.
func (r *EnvFile) Contains(key string) bool {
	if inEnv(key) {
		return true
	}
	_, ok := r.data[key]
	return ok
}

// Get returns the file value for key, or ErrKeyNotFound when the file does
// not define it. The environment is not consulted.
func (r *EnvFile) Get(key string) (string, error) {
	value, ok := r.data[key]
	if !ok {
		return "", notFound(key)
	}
	return value, nil
}

// Keys returns the defined keys in file order.
func (r *EnvFile) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}
