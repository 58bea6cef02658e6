package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ardiaca/estrats/pkg/config"
)

const (
	formatDotenv = "dotenv"
	formatYAML   = "yaml"
)

// castByName maps a --cast flag value to the corresponding Cast.
func castByName(name string) config.Cast {
	switch name {
	case "bool":
		return config.Bool
	case "int":
		return config.Int
	case "float":
		return config.Float
	case "duration":
		return config.Duration
	case "csv":
		return config.CSV()
	default:
		return nil
	}
}

func runGet(w io.Writer, locator *config.Locator, key string, hasDefault bool, defaultValue, castName string) error {
	var opts []config.GetOption
	if hasDefault {
		opts = append(opts, config.WithDefault(defaultValue))
	}
	if cast := castByName(castName); cast != nil {
		opts = append(opts, config.WithCast(cast))
	}

	value, err := locator.Get(key, opts...)
	if err != nil {
		return err
	}
	if list, ok := value.([]string); ok {
		_, err = fmt.Fprintln(w, strings.Join(list, "\n"))
		return err
	}
	_, err = fmt.Fprintln(w, value)
	return err
}

// keyLister is implemented by the file-backed repositories.
type keyLister interface {
	Keys() []string
}

func runExport(w io.Writer, locator *config.Locator, format string) error {
	resolver, err := locator.Resolver()
	if err != nil {
		return err
	}
	repository := resolver.Repository()
	lister, ok := repository.(keyLister)
	if !ok {
		// Empty repository: nothing to export.
		return nil
	}

	if format == formatYAML {
		return exportYAML(w, repository, lister.Keys())
	}
	return exportDotenv(w, repository, lister.Keys())
}

func exportDotenv(w io.Writer, repository config.Repository, keys []string) error {
	for _, key := range keys {
		value, err := repository.Get(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}

func exportYAML(w io.Writer, repository config.Repository, keys []string) error {
	// Built as a yaml.Node mapping so the output keeps repository order.
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range keys {
		value, err := repository.Get(key)
		if err != nil {
			return err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return errors.Wrap(err, "cannot marshal export")
	}
	_, err = w.Write(out)
	return err
}
