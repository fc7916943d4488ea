// Package toml loads CLI configuration files written in TOML.
package toml

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// Loader is a kong.ConfigurationLoader for TOML files.
//
// Top-level keys set flags of any command. A table named after a command
// sets flags of that command only and takes precedence:
//
//	db = "ratedoc.db"
//
//	[harvest]
//	concurrency = 4
//	year_delay = "2s"
//
// Keys may use dashes or underscores.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}

	var resolver kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if table, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(table, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}
	return resolver, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		v, ok := values[key]
		if !ok {
			continue
		}
		if _, table := v.(map[string]any); table {
			continue
		}
		return v, true
	}
	return nil, false
}
