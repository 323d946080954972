package story

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DomainContent prefixes content hashes. The version suffix leaves room
// for a future algorithm change.
const DomainContent = "storytime/content/v1"

// ContentHash returns a stable SHA-256 identity for a block sequence.
// Two sequences hash equal when they serialize to the same canonical JSON:
// object keys sorted by UTF-16 code units, strings NFC normalized, no HTML
// escaping.
func ContentHash(blocks []Block) (string, error) {
	data, err := MarshalCanonical(blocks)
	if err != nil {
		return "", fmt.Errorf("content hash: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainContent))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MarshalCanonical produces canonical JSON for a block sequence.
func MarshalCanonical(blocks []Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, blocksValue(blocks)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalCanonicalValue produces canonical JSON for a tree of
// map[string]any, []any, strings, integers and booleans.
func MarshalCanonicalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func blocksValue(blocks []Block) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		obj := map[string]any{
			"type":    b.Type,
			"props":   propsValue(b.Props),
			"content": inlineValue(b.Content),
		}
		if b.ID != "" {
			obj["id"] = b.ID
		}
		if len(b.Children) > 0 {
			obj["children"] = blocksValue(b.Children)
		}
		out[i] = obj
	}
	return out
}

func propsValue(p Props) map[string]any {
	obj := map[string]any{}
	if p.Level != 0 {
		obj["level"] = int64(p.Level)
	}
	if p.TextColor != "" {
		obj["textColor"] = p.TextColor
	}
	if p.BackgroundColor != "" {
		obj["backgroundColor"] = p.BackgroundColor
	}
	if p.TextAlignment != "" {
		obj["textAlignment"] = p.TextAlignment
	}
	return obj
}

func inlineValue(items []InlineContent) []any {
	out := make([]any, len(items))
	for i, item := range items {
		obj := map[string]any{
			"type": item.Type,
			"text": item.Text,
		}
		styles := map[string]any{}
		for k, v := range item.Styles {
			styles[k] = v
		}
		obj["styles"] = styles
		if item.Href != "" {
			obj["href"] = item.Href
		}
		if len(item.Content) > 0 {
			obj["content"] = inlineValue(item.Content)
		}
		out[i] = obj
	}
	return out
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return writeCanonicalString(buf, val)
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case int64:
		fmt.Fprintf(buf, "%d", val)
	case int:
		fmt.Fprintf(buf, "%d", val)
	case float64, float32:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return lessUTF16(keys[i], keys[j])
		})
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// writeCanonicalString NFC normalizes s and writes it without HTML
// escaping. U+2028 and U+2029 stay literal.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	out := strings.TrimSuffix(tmp.String(), "\n")
	if strings.Contains(out, `\u202`) {
		out = unescapeLineSeparators(out)
	}
	buf.WriteString(out)
	return nil
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes back into literal
// characters unless the backslash is itself escaped.
func unescapeLineSeparators(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			if strings.HasPrefix(s[i:], `\u2028`) {
				b.WriteString("\u2028")
				i += 5
				continue
			}
			if strings.HasPrefix(s[i:], `\u2029`) {
				b.WriteString("\u2029")
				i += 5
				continue
			}
			// Copy the escape pair verbatim so \\u2028 stays escaped.
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// lessUTF16 orders strings by UTF-16 code units as RFC 8785 requires.
func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}
