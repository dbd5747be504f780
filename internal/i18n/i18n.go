// Package i18n holds the interface strings shown around the card data: one
// nested key tree per language, looked up by dotted path with English as the
// fallback tree.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/arcanum/internal/lang"
)

//go:embed locales/*.toml
var locales embed.FS

// DefaultPageTitle is the key PageTitle falls back to.
const DefaultPageTitle = "pageTitle.main"

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Table is a set of translation trees keyed by language.
type Table struct {
	trees map[lang.Code]map[string]any
}

// Load reads <code>.toml for every supported language from fsys. The English
// file is required; the others are optional and fall back to English.
func Load(fsys fs.FS) (*Table, error) {
	t := &Table{trees: map[lang.Code]map[string]any{}}
	for _, code := range lang.Supported {
		name := string(code) + ".toml"
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			if code != lang.English && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}
		tree := map[string]any{}
		if _, err := toml.Decode(string(b), &tree); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", name, err)
		}
		t.trees[code] = tree
	}
	return t, nil
}

// Default returns the table built from the embedded locale files.
var Default = sync.OnceValue(func() *Table {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		panic(err)
	}
	t, err := Load(sub)
	if err != nil {
		panic(fmt.Sprintf("embedded locales: %v", err))
	}
	return t
})

// lookup walks key through l's tree and, on any missing segment, walks it
// again through the English tree.
func (t *Table) lookup(l lang.Code, key string) (any, bool) {
	segments := strings.Split(key, ".")
	if v, ok := walk(t.trees[l], segments); ok {
		return v, true
	}
	return walk(t.trees[lang.English], segments)
}

func walk(tree map[string]any, segments []string) (any, bool) {
	if tree == nil {
		return nil, false
	}
	var v any = tree
	for _, s := range segments {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		if v, ok = m[s]; !ok {
			return nil, false
		}
	}
	return v, true
}

// T returns the string at key for l. When the key resolves to something other
// than a string, or to nothing in either tree, the key itself is returned.
// Placeholders such as {count} are replaced from params; a placeholder with
// no param or an empty value is left as written.
func (t *Table) T(l lang.Code, key string, params map[string]any) string {
	v, ok := t.lookup(l, key)
	if !ok {
		return key
	}
	s, ok := v.(string)
	if !ok {
		return key
	}
	if len(params) == 0 {
		return s
	}
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		p, ok := params[match[1:len(match)-1]]
		if !ok || p == nil {
			return match
		}
		if str := fmt.Sprint(p); str != "" {
			return str
		}
		return match
	})
}

// Object returns the subtree at key for l, or an empty map.
func (t *Table) Object(l lang.Code, key string) map[string]any {
	v, ok := t.lookup(l, key)
	if !ok {
		return map[string]any{}
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Keys lists every leaf key of l's tree, sorted.
func (t *Table) Keys(l lang.Code) []string {
	var keys []string
	collect(t.trees[l], "", &keys)
	slices.Sort(keys)
	return keys
}

func collect(tree map[string]any, prefix string, keys *[]string) {
	for k, v := range tree {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			collect(sub, full, keys)
			continue
		}
		*keys = append(*keys, full)
	}
}

// MissingKeys lists the English leaf keys that l does not translate.
func (t *Table) MissingKeys(l lang.Code) []string {
	if l == lang.English {
		return nil
	}
	var missing []string
	for _, key := range t.Keys(lang.English) {
		v, ok := walk(t.trees[l], strings.Split(key, "."))
		if s, isString := v.(string); !ok || !isString || s == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// Translator binds a table to one language.
type Translator struct {
	table *Table
	lang  lang.Code
}

// For returns a translator for l.
func (t *Table) For(l lang.Code) Translator {
	return Translator{table: t, lang: l}
}

func (tr Translator) Lang() lang.Code { return tr.lang }

func (tr Translator) T(key string, params map[string]any) string {
	return tr.table.T(tr.lang, key, params)
}

func (tr Translator) Object(key string) map[string]any {
	return tr.table.Object(tr.lang, key)
}

// PageTitle returns the page title at key, or the main title when key is empty.
func (tr Translator) PageTitle(key string) string {
	if key == "" {
		key = DefaultPageTitle
	}
	return tr.T(key, nil)
}
