package ports

import "strings"

// EscapeToken replaces every doubled low line in an identifier. It matches
// the mangling Verilator applies to "__" in generated model member names.
const EscapeToken = "___05F"

// Sanitize makes a raw port identifier safe to embed in generated sources.
//
// Each "__" is replaced by EscapeToken. Escape tokens already present are
// kept as they are, so Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	if !strings.Contains(name, "__") {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 4*strings.Count(name, "__"))
	for i := 0; i < len(name); {
		if strings.HasPrefix(name[i:], EscapeToken) {
			b.WriteString(EscapeToken)
			i += len(EscapeToken)
			continue
		}
		if strings.HasPrefix(name[i:], "__") {
			b.WriteString(EscapeToken)
			i += 2
			continue
		}
		b.WriteByte(name[i])
		i++
	}
	return b.String()
}
