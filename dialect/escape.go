package dialect

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Backslash escapes shared by the /* */ comment encoding and MySQL string
// literals. Decoding reverses them.
var (
	blockCommentEscaper = strings.NewReplacer(
		"\x00", `\0`, `\`, `\\`, "\n", `\n`, "\r", `\r`, "\x1a", `\Z`, "/", `\/`,
	)
	mysqlStringEscaper = strings.NewReplacer(
		"\x00", `\0`, `\`, `\\`, "\n", `\n`, "\r", `\r`, "\x1a", `\Z`, `'`, `\'`, `"`, `\"`,
	)
	// postgresEscaper is the body of an E'' literal.
	postgresEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, `'`, `''`)
)

// literal renders a default value. Strings go through quote; bools use the
// dialect's spelling.
func literal(v any, quote func(string) string, yes, no string) string {
	switch x := v.(type) {
	case bool:
		if x {
			return yes
		}
		return no
	case string:
		return quote(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return quote(x.Format("2006-01-02 15:04:05.999999"))
	}
	return quote(fmt.Sprint(v))
}

// singleQuote is the standard SQL string literal: quotes doubled.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sqliteQuote is singleQuote with line breaks spelled as char() calls, so
// the literal never spans lines. SQLite has no escape sequences in strings.
func sqliteQuote(s string) string {
	if !strings.ContainsAny(s, "\n\r") {
		return singleQuote(s)
	}
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			continue
		}
		if i > start {
			parts = append(parts, singleQuote(s[start:i]))
		}
		parts = append(parts, fmt.Sprintf("char(%d)", s[i]))
		start = i + 1
	}
	if start < len(s) {
		parts = append(parts, singleQuote(s[start:]))
	}
	return "(" + strings.Join(parts, " || ") + ")"
}
