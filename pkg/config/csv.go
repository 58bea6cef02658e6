package config

import (
	"strings"

	"github.com/pkg/errors"
)

// defaultStrip is the cutset trimmed from each element's edges.
const defaultStrip = " \t\n\v\f\r"

type (
	// CSVOption configures the Cast produced by CSV.
	CSVOption func(*csvOptions)

	csvOptions struct {
		cast      Cast
		delimiter string
		strip     string
	}
)

// WithCSVCast applies cast to every element after trimming. The resulting
// slice is []any instead of []string.
func WithCSVCast(cast Cast) CSVOption {
	return func(o *csvOptions) {
		o.cast = cast
	}
}

// WithDelimiter sets the characters that split elements. Defaults to comma.
func WithDelimiter(delimiter string) CSVOption {
	return func(o *csvOptions) {
		o.delimiter = delimiter
	}
}

// WithStrip sets the cutset trimmed from each element's edges. Defaults to
// whitespace.
func WithStrip(cutset string) CSVOption {
	return func(o *csvOptions) {
		o.strip = cutset
	}
}

// CSV produces a Cast that splits a raw value into an ordered slice.
// Splitting is quoting-aware: quoted substrings containing the delimiter stay
// intact and the quote characters are removed. An empty value yields an empty
// slice. Without WithCSVCast the result is a []string, otherwise a []any of
// the casted elements.
func CSV(opts ...CSVOption) Cast {
	o := csvOptions{delimiter: ",", strip: defaultStrip}
	for _, opt := range opts {
		opt(&o)
	}

	return func(value string) (any, error) {
		tokens, err := splitQuoted(value, o.delimiter)
		if err != nil {
			return nil, err
		}
		if o.cast == nil {
			out := make([]string, 0, len(tokens))
			for _, token := range tokens {
				out = append(out, strings.Trim(token, o.strip))
			}
			return out, nil
		}
		out := make([]any, 0, len(tokens))
		for _, token := range tokens {
			casted, err := o.cast(strings.Trim(token, o.strip))
			if err != nil {
				return nil, err
			}
			out = append(out, casted)
		}
		return out, nil
	}
}

// splitQuoted tokenizes value shell-style using the given delimiter
// characters. Single quotes preserve their content literally; inside double
// quotes a backslash escapes only `"` and `\`; outside quotes a backslash
// escapes the next character. Runs of delimiters produce no empty tokens.
func splitQuoted(value, delimiters string) ([]string, error) {
	var (
		tokens  []string
		sb      strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)
	for _, r := range value {
		switch {
		case escaped:
			if quote == '"' && r != '"' && r != '\\' {
				sb.WriteRune('\\')
			}
			sb.WriteRune(r)
			inToken = true
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				sb.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				sb.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == '\\':
			escaped = true
			inToken = true
		case strings.ContainsRune(delimiters, r):
			if inToken {
				tokens = append(tokens, sb.String())
				sb.Reset()
				inToken = false
			}
		default:
			sb.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.Errorf("no closing quotation in %q", value)
	}
	if escaped {
		return nil, errors.Errorf("dangling escape character in %q", value)
	}
	if inToken {
		tokens = append(tokens, sb.String())
	}
	return tokens, nil
}
