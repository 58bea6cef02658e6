package config

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// iniSection is the only section an IniFile exposes.
const iniSection = "settings"

// IniFile retrieves keys from the [settings] section of an INI file.
// Values may reference sibling keys with %(name)s interpolation; a literal
// percent sign is written as %%.
type IniFile struct {
	section *ini.Section
}

// NewIniFile reads and parses the INI file at source.
func NewIniFile(source string, opts ...Option) (*IniFile, error) {
	o := newOptions(opts)
	content, err := readFile(source, o.encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read ini file %q", source)
	}

	// Key names are case-insensitive in this format; section names are not.
	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, []byte(content))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse ini file %q", source)
	}

	// A missing [settings] section is not an error; every lookup just misses.
	section, err := file.GetSection(iniSection)
	if err != nil {
		section = nil
	}
	return &IniFile{section: section}, nil
}

// Contains reports whether key is defined in the [settings] section or in the
// process environment.
func (r *IniFile) Contains(key string) bool {
	if inEnv(key) {
		return true
	}
	return r.section != nil && r.section.HasKey(key)
}

// Get returns the interpolated value for key from the [settings] section, or
// ErrKeyNotFound when the section does not define it.
func (r *IniFile) Get(key string) (string, error) {
	if r.section == nil {
		return "", notFound(key)
	}
	k, err := r.section.GetKey(key)
	if err != nil {
		return "", notFound(key)
	}
	// ini.v1 resolves %(name)s references but leaves %% alone; fold the
	// escape here so %% always reads back as a single percent sign.
	return strings.ReplaceAll(k.String(), "%%", "%"), nil
}

// Keys returns the key names defined in the [settings] section.
func (r *IniFile) Keys() []string {
	if r.section == nil {
		return nil
	}
	return r.section.KeyStrings()
}
