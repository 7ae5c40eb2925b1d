package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Args are the values substituted into a template.
//
//	positional = ["Ann", 3]
//	[keyword]
//	city = "Oslo"
//	scores = { math = 5 }
type Args struct {
	Positional []any          `toml:"positional"`
	Keyword    map[string]any `toml:"keyword"`
}

// LoadArgs reads an argument file.
func LoadArgs(path string) (Args, error) {
	var args Args
	meta, err := toml.DecodeFile(path, &args)
	if err != nil {
		return Args{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	// вложенные таблицы внутри positional и [keyword] попадают в map[string]any
	// и toml считает их ключи недекодированными; остальное, скорее всего, опечатка
	for _, k := range meta.Undecoded() {
		if len(k) > 0 && (k[0] == "positional" || k[0] == "keyword") {
			continue
		}
		return Args{}, fmt.Errorf("%s: unknown key %q (expected positional or [keyword])", path, k.String())
	}
	return args, nil
}

// ParseValue interprets s as a TOML value (42, 1.5, true, "x", [1, 2],
// { a = 1 }); anything that is not valid TOML is taken as a bare string.
func ParseValue(s string) any {
	var doc struct {
		V any `toml:"v"`
	}
	if _, err := toml.Decode("v = "+s, &doc); err != nil || doc.V == nil {
		return s
	}
	return doc.V
}

// AddPositional appends a command-line positional value.
func (a *Args) AddPositional(s string) {
	a.Positional = append(a.Positional, ParseValue(s))
}

// AddKeyword parses "name=value" and sets the keyword argument.
func (a *Args) AddKeyword(kv string) error {
	name, value, ok := strings.Cut(kv, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("invalid keyword argument %q (expected name=value)", kv)
	}
	if a.Keyword == nil {
		a.Keyword = make(map[string]any)
	}
	a.Keyword[name] = ParseValue(value)
	return nil
}
