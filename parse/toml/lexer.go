package toml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// tokenKind classifies what the next character opens. Classification is all
// peekToken does: +, - and digits stay ambiguous between numbers, dates and
// bare keys, and the parser picks the sub-lexer that resolves them.
type tokenKind uint8

const (
	tokenComment tokenKind = iota
	tokenString
	tokenLiteralString
	tokenDot
	tokenPlus
	tokenMinus
	tokenDigit
	tokenIdentifier
	tokenEquals
	tokenComma
	tokenOpenBracket
	tokenCloseBracket
	tokenOpenBrace
	tokenCloseBrace
	tokenEOL
	tokenEOF
)

// String returns the name error messages use for the token.
func (k tokenKind) String() string {
	switch k {
	case tokenComment:
		return "comment"
	case tokenString:
		return "string"
	case tokenLiteralString:
		return "literal string"
	case tokenDot:
		return "dot"
	case tokenPlus:
		return "plus"
	case tokenMinus:
		return "minus"
	case tokenDigit:
		return "digit"
	case tokenIdentifier:
		return "identifier"
	case tokenEquals:
		return "equals"
	case tokenComma:
		return "comma"
	case tokenOpenBracket:
		return "open bracket"
	case tokenCloseBracket:
		return "close bracket"
	case tokenOpenBrace:
		return "open brace"
	case tokenCloseBrace:
		return "close brace"
	case tokenEOL:
		return "end of line"
	case tokenEOF:
		return "end of file"
	}
	return "unknown"
}

// simple reports whether the token is a single known character that
// skipToken may consume blindly. Plus and minus are excluded: they open
// number literals and belong to the number lexer.
func (k tokenKind) simple() bool {
	switch k {
	case tokenDot, tokenEquals, tokenComma,
		tokenOpenBracket, tokenCloseBracket, tokenOpenBrace, tokenCloseBrace:
		return true
	}
	return false
}

// lexer turns scanner characters into tokens and typed literal values. It
// owns the sub-lexers for numbers (number.go), date-times (date.go) and
// strings (below); the parser supplies the grammar around them.
type lexer struct {
	sc   *scanner
	opts *options
}

// peekToken classifies the next token without consuming anything but the
// whitespace in front of it.
func (lx *lexer) peekToken() (tokenKind, error) {
	lx.skipWhitespace()
	c := lx.sc.peek(0)
	switch c {
	case '#':
		return tokenComment, nil
	case '"':
		return tokenString, nil
	case '\'':
		return tokenLiteralString, nil
	case '.':
		return tokenDot, nil
	case '+':
		return tokenPlus, nil
	case '-':
		return tokenMinus, nil
	case '=':
		return tokenEquals, nil
	case ',':
		return tokenComma, nil
	case '[':
		return tokenOpenBracket, nil
	case ']':
		return tokenCloseBracket, nil
	case '{':
		return tokenOpenBrace, nil
	case '}':
		return tokenCloseBrace, nil
	case '_':
		return tokenIdentifier, nil
	}
	if c < 0 {
		if lx.sc.atEOF() {
			return tokenEOF, nil
		}
		return tokenEOL, nil
	}
	if isDigit(c) {
		return tokenDigit, nil
	}
	if isLetter(c) {
		return tokenIdentifier, nil
	}
	return 0, syntaxErrorf(lx.sc.location(), "unexpected character %q", c)
}

// skipToken consumes a single-character token the caller just peeked.
func (lx *lexer) skipToken(kind tokenKind) {
	if !kind.simple() {
		panic(fmt.Sprintf("toml: a %s token cannot be skipped blindly", kind))
	}
	lx.sc.skip(1)
}

func (lx *lexer) skipWhitespace() {
	for {
		c := lx.sc.peek(0)
		if c != ' ' && c != '\t' {
			return
		}
		lx.sc.skip(1)
	}
}

// skipCommentsAndLines advances over blank lines and comments until the
// cursor rests on something meaningful or the input ends. Comments run to
// the end of their line.
func (lx *lexer) skipCommentsAndLines() error {
	for {
		kind, err := lx.peekToken()
		if err != nil {
			return err
		}
		switch kind {
		case tokenComment:
			lx.sc.skip(lx.sc.remaining())
		case tokenEOL:
			lx.sc.advanceLine()
		default:
			return nil
		}
	}
}

// skipComments advances over comment lines only. A bare line break stays
// put, so the caller still sees it as an end-of-line token.
func (lx *lexer) skipComments() error {
	for {
		kind, err := lx.peekToken()
		if err != nil {
			return err
		}
		if kind != tokenComment {
			return nil
		}
		lx.sc.skip(lx.sc.remaining())
		lx.sc.advanceLine()
	}
}

// takeWhile consumes and returns the run of characters satisfying pred on
// the current line.
func (lx *lexer) takeWhile(pred func(rune) bool) string {
	var b strings.Builder
	for {
		c := lx.sc.peek(0)
		if c < 0 || !pred(c) {
			return b.String()
		}
		b.WriteRune(c)
		lx.sc.skip(1)
	}
}

// peekWord returns the bare-identifier run at the cursor without consuming
// it, so the parser can decide between keywords and junk before committing.
func (lx *lexer) peekWord() string {
	var b strings.Builder
	for i := 0; ; i++ {
		c := lx.sc.peek(i)
		if c < 0 || !isBareKeyChar(c) {
			return b.String()
		}
		b.WriteRune(c)
	}
}

// parseString lexes the string literal at the cursor and returns its
// decoded contents. The opening quote decides the flavor: literal strings
// ('...') copy verbatim, basic strings ("...") decode escapes. A tripled
// quote opens the multiline form, which is recognized but not implemented;
// allowMultiline picks between the unsupported-feature error (value
// position) and a plain syntax error (key position, where multiline could
// never be legal).
func (lx *lexer) parseString(allowMultiline bool) (string, error) {
	kind, err := lx.peekToken()
	if err != nil {
		return "", err
	}
	var quote rune
	switch kind {
	case tokenString:
		quote = '"'
	case tokenLiteralString:
		quote = '\''
	default:
		panic(fmt.Sprintf("toml: parseString called on a %s token", kind))
	}
	startLoc := lx.sc.location()

	if lx.sc.peek(1) == quote && lx.sc.peek(2) == quote {
		if !allowMultiline {
			return "", syntaxErrorf(startLoc, "multiline strings are not allowed here")
		}
		return "", &NotSupportedError{Feature: "multiline strings", Loc: startLoc}
	}
	lx.sc.skip(1) // the opening quote

	if quote == '\'' {
		rest := lx.sc.rest()
		end := strings.IndexRune(rest, '\'')
		if end < 0 {
			return "", syntaxErrorf(startLoc, "unable to find the closing quote ' for a literal string")
		}
		content := rest[:end]
		lx.sc.skip(utf8.RuneCountInString(content) + 1)
		return content, nil
	}

	var b strings.Builder
	for {
		c := lx.sc.peek(0)
		switch {
		case c < 0:
			return "", syntaxErrorf(startLoc, `unable to find the closing quote " for a basic string`)
		case c == '\\':
			if err := lx.decodeEscape(&b); err != nil {
				return "", err
			}
		case c == '"':
			lx.sc.skip(1)
			return b.String(), nil
		default:
			b.WriteRune(c)
			lx.sc.skip(1)
		}
	}
}

// decodeEscape decodes the backslash escape at the cursor into b. The
// single-character escapes come from escapeReplacement; \u and \U take four
// and eight hex digits and must name a unicode scalar value, so the
// surrogate range and anything past MaxRune are rejected rather than
// smuggled into the string as replacement characters.
func (lx *lexer) decodeEscape(b *strings.Builder) error {
	escStart := lx.sc.location()
	c := lx.sc.peek(1)
	if c < 0 {
		return syntaxErrorf(escStart, "unexpected end of line after a string escape")
	}
	lx.sc.skip(2) // the backslash and the escape character

	if c == 'u' || c == 'U' {
		digits := 4
		if c == 'U' {
			digits = 8
		}
		if lx.sc.remaining() < digits {
			return syntaxErrorf(escStart, `a unicode escape \%c needs %d hex digits`, c, digits)
		}
		hex := lx.sc.rest()
		if len(hex) > digits {
			hex = hex[:digits]
		}
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return syntaxErrorf(escStart, `invalid hex digits for the unicode escape \%c`, c)
		}
		if code > unicode.MaxRune || utf16.IsSurrogate(rune(code)) {
			return syntaxErrorf(escStart, "U+%04X is not a unicode scalar value", code)
		}
		lx.sc.skip(digits)
		b.WriteRune(rune(code))
		return nil
	}

	replacement := escapeReplacement(c)
	if replacement < 0 {
		return syntaxErrorf(escStart, `invalid escape sequence \%c`, c)
	}
	b.WriteRune(replacement)
	return nil
}
