package card

import (
	"fmt"
	"sort"

	"github.com/arcanaland/arcanum/internal/lang"
)

// Field names a multilingual column of the cards table.
type Field string

const (
	FieldName        Field = "name"
	FieldValue       Field = "value"
	FieldMeaningUp   Field = "meaning_up"
	FieldMeaningRev  Field = "meaning_rev"
	FieldDescription Field = "description"
	FieldSuit        Field = "suit"
)

// Fields lists the editable multilingual fields in table order.
var Fields = []Field{FieldName, FieldValue, FieldSuit, FieldMeaningUp, FieldMeaningRev, FieldDescription}

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown field %q", ErrInvalid, s)
}

// Patch is a partial update: for each field, only the language keys present
// are written and sibling languages are kept.
type Patch map[Field]lang.Text

// Set records value for one field and language, merging with what the patch
// already holds for that field.
func (p Patch) Set(f Field, l lang.Code, value string) {
	p[f] = lang.Merge(p[f], lang.Text{l: value})
}

// Merge folds other into p at language-key granularity.
func (p Patch) Merge(other Patch) {
	for f, t := range other {
		p[f] = lang.Merge(p[f], t)
	}
}

// Clone returns a deep copy of p.
func (p Patch) Clone() Patch {
	out := make(Patch, len(p))
	for f, t := range p {
		out[f] = t.Clone()
	}
	return out
}

// SortedFields returns the patched fields in a stable order.
func (p Patch) SortedFields() []Field {
	fields := make([]Field, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Validate checks the patch against the card it will be applied to.
func (p Patch) Validate(target Card) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty patch for %s", ErrInvalid, target.NameShort)
	}
	for f, t := range p {
		if _, err := ParseField(string(f)); err != nil {
			return err
		}
		for code, v := range t {
			if !code.Valid() {
				return fmt.Errorf("%w: %s.%s: unsupported language %q", ErrInvalid, target.NameShort, f, code)
			}
			if code == lang.English && v == "" {
				return fmt.Errorf("%w: %s.%s: english value cannot be cleared", ErrInvalid, target.NameShort, f)
			}
		}
	}

	suit, ok := p[FieldSuit]
	if !ok {
		return nil
	}
	if target.Type == Major {
		return fmt.Errorf("%w: %s: major arcana cannot carry a suit", ErrInvalid, target.NameShort)
	}
	if en, set := suit[lang.English]; set {
		if _, known := ParseSuit(en); !known {
			return fmt.Errorf("%w: %s: unknown suit %q", ErrInvalid, target.NameShort, en)
		}
	}
	return nil
}

// Apply returns a copy of c with p merged into it. The result is validated.
func (p Patch) Apply(c Card) (Card, error) {
	if err := p.Validate(c); err != nil {
		return Card{}, err
	}
	out := c.Clone()
	for f, t := range p {
		out.setText(f, lang.Merge(out.Text(f), t))
	}
	if err := out.Validate(); err != nil {
		return Card{}, err
	}
	return out, nil
}
