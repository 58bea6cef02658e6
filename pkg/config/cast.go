package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Cast transforms a raw string value into a typed value. Errors returned by a
// Cast propagate uncaught to the Get caller.
type Cast func(value string) (any, error)

var (
	trueValues  = []string{"y", "yes", "t", "true", "on", "1"}
	falseValues = []string{"n", "no", "f", "false", "off", "0"}
)

// Bool casts y/yes/t/true/on/1 to true and n/no/f/false/off/0 to false,
// case-insensitively. The empty string casts to false; any other value is an
// error.
func Bool(value string) (any, error) {
	lower := strings.ToLower(value)
	for _, v := range trueValues {
		if lower == v {
			return true, nil
		}
	}
	for _, v := range falseValues {
		if lower == v {
			return false, nil
		}
	}
	if value == "" {
		return false, nil
	}
	return nil, errors.Errorf("invalid truth value %q", value)
}

// Int casts a decimal string to an int.
func Int(value string) (any, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot cast %q to int", value)
	}
	return n, nil
}

// Float casts a decimal string to a float64.
func Float(value string) (any, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot cast %q to float", value)
	}
	return f, nil
}

// Duration casts a string in time.ParseDuration syntax to a time.Duration.
func Duration(value string) (any, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot cast %q to duration", value)
	}
	return d, nil
}
