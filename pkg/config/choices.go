package config

import (
	"reflect"

	"github.com/pkg/errors"
)

// ChoicePair associates a permitted value with a human-readable label, in the
// style of Django choices. Only the value takes part in validation.
type ChoicePair struct {
	Value any
	Label string
}

type (
	// ChoicesOption configures the Cast produced by Choices.
	ChoicesOption func(*choicesOptions)

	choicesOptions struct {
		cast  Cast
		pairs []ChoicePair
	}
)

// WithChoicesCast applies cast to the raw value before the membership check.
func WithChoicesCast(cast Cast) ChoicesOption {
	return func(o *choicesOptions) {
		o.cast = cast
	}
}

// WithPairs contributes the values of (value, label) pairs to the permitted
// set, in addition to the flat list.
func WithPairs(pairs ...ChoicePair) ChoicesOption {
	return func(o *choicesOptions) {
		o.pairs = append(o.pairs, pairs...)
	}
}

// Choices produces a Cast that validates the (optionally casted) value
// against a set of permitted values. On mismatch the error lists the
// offending value and the full permitted set.
func Choices(flat []any, opts ...ChoicesOption) Cast {
	var o choicesOptions
	for _, opt := range opts {
		opt(&o)
	}

	valid := make([]any, 0, len(flat)+len(o.pairs))
	valid = append(valid, flat...)
	for _, pair := range o.pairs {
		valid = append(valid, pair.Value)
	}

	return func(value string) (any, error) {
		casted := any(value)
		if o.cast != nil {
			var err error
			casted, err = o.cast(value)
			if err != nil {
				return nil, err
			}
		}
		for _, v := range valid {
			// DeepEqual instead of ==: a cast may produce an uncomparable
			// type such as a slice.
			if reflect.DeepEqual(v, casted) {
				return casted, nil
			}
		}
		return nil, errors.Errorf("value %q not in list; valid values are %v", value, valid)
	}
}
