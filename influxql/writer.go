package influxql

import (
	"bytes"
	"io"
)

type (
	// DialectWriter writes query text with influx escaping rules: identities
	// are double quoted, literals single quoted, both backslash-escaped.
	DialectWriter interface {
		io.Writer
		Len() int
		WriteLiteral(string)
		WriteIdentity(string)
		WriteRaw(string)
		String() string
	}
	influxDialect struct {
		bytes.Buffer
		LiteralQuote  byte
		IdentityQuote byte
	}
)

// NewDialectWriter creates the influx writer, literal=' identity="
func NewDialectWriter() DialectWriter {
	return &influxDialect{LiteralQuote: '\'', IdentityQuote: '"'}
}

// WriteLiteral writes a quoted string literal.
func (w *influxDialect) WriteLiteral(l string) {
	LiteralQuoteEscapeBuf(&w.Buffer, w.LiteralQuote, l)
}

// WriteIdentity writes a quoted identity, `*` is written bare.
func (w *influxDialect) WriteIdentity(i string) {
	if i == "*" {
		w.WriteByte('*')
		return
	}
	LiteralQuoteEscapeBuf(&w.Buffer, w.IdentityQuote, i)
}

// WriteRaw writes text as is, used for regex and math expressions.
func (w *influxDialect) WriteRaw(s string) {
	io.WriteString(&w.Buffer, s)
}

// LiteralQuoteEscape quotes and escapes a string
//
//	LiteralQuoteEscape('\'', "item's") => 'item\'s'
//	LiteralQuoteEscape('"', `say "hi"`) => "say \"hi\""
func LiteralQuoteEscape(quote byte, s string) string {
	var buf bytes.Buffer
	LiteralQuoteEscapeBuf(&buf, quote, s)
	return buf.String()
}

// LiteralQuoteEscapeBuf quotes and escapes a string into buf.
func LiteralQuoteEscapeBuf(buf *bytes.Buffer, quote byte, s string) {
	buf.WriteByte(quote)
	escapeQuote(buf, quote, s)
	buf.WriteByte(quote)
}

func escapeQuote(buf *bytes.Buffer, quote byte, val string) {
	last := 0
	for i := 0; i < len(val); i++ {
		if c := val[i]; c == quote || c == '\\' {
			buf.WriteString(val[last:i])
			buf.WriteByte('\\')
			buf.WriteByte(c)
			last = i + 1
		}
	}
	buf.WriteString(val[last:])
}

// isRegex is true for values of form /.../
func isRegex(s string) bool {
	return len(s) >= 2 && s[0] == '/' && s[len(s)-1] == '/'
}
