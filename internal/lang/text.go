package lang

// Text maps a language code to the same semantic string in that language.
// English is mandatory for stored values; other languages are optional and an
// empty string counts as absent.
type Text map[Code]string

// NewText builds a Text with the English value and optional Spanish value.
func NewText(en, es string) Text {
	t := Text{English: en}
	if es != "" {
		t[Spanish] = es
	}
	return t
}

// Resolve picks the string to display for l: the exact language, then
// English, then the first fallback, then "".
func Resolve(t Text, l Code, fallback ...string) string {
	if v := t[l]; v != "" {
		return v
	}
	if v := t[English]; v != "" {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// Has reports whether t carries a non-empty value for l.
func Has(t Text, l Code) bool {
	return t[l] != ""
}

// IsMissing reports an untranslated string: l is not English, t has no value
// for l and an English value exists.
func IsMissing(t Text, l Code) bool {
	return l != English && t[l] == "" && t[English] != ""
}

// Display resolves t for l and brackets English text shown in place of a
// missing translation.
func Display(t Text, l Code) string {
	if IsMissing(t, l) {
		return "[" + t[English] + "]"
	}
	return Resolve(t, l)
}

// Merge returns a copy of base with every non-empty key of overlay written
// over it. Keys absent from overlay keep their base value.
func Merge(base, overlay Text) Text {
	out := make(Text, len(base)+len(overlay))
	for k, v := range base {
		if v != "" {
			out[k] = v
		}
	}
	for k, v := range overlay {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Clone returns a copy of t, nil for nil.
func (t Text) Clone() Text {
	if t == nil {
		return nil
	}
	out := make(Text, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Equal compares two values ignoring empty entries.
func (t Text) Equal(other Text) bool {
	for k, v := range t {
		if v != "" && other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if v != "" && t[k] != v {
			return false
		}
	}
	return true
}
