package toml

import (
	"io"
	"strings"
)

// DefaultMaxKeyDepth bounds how deeply dotted keys may nest before the
// parser reports an overflow instead of recursing further. 512 levels is
// far past any configuration file written by hand and still cheap to hit.
const DefaultMaxKeyDepth = 512

// options carries the parse-time configuration. The zero value is not used
// directly; defaultOptions supplies the defaults and Option funcs adjust it.
type options struct {
	bigIntegers   bool
	exactDecimals bool
	maxKeyDepth   int
}

func defaultOptions() options {
	return options{bigIntegers: true, maxKeyDepth: DefaultMaxKeyDepth}
}

// Option adjusts parser behavior. Options apply per call; there is no
// global state.
type Option func(*options)

// WithBigIntegers controls whether integers wider than 64 bits fall back to
// an arbitrary-precision representation (the default) or fail the parse
// with an *OverflowError.
func WithBigIntegers(enabled bool) Option {
	return func(o *options) { o.bigIntegers = enabled }
}

// WithExactDecimals stores decimal numbers as exact arbitrary-precision
// decimals instead of float64, trading speed for fidelity. The non-finite
// nan and inf stay floats either way.
func WithExactDecimals(enabled bool) Option {
	return func(o *options) { o.exactDecimals = enabled }
}

// WithMaxKeyDepth overrides the dotted-key nesting budget. Values below one
// keep the default.
func WithMaxKeyDepth(depth int) Option {
	return func(o *options) {
		if depth >= 1 {
			o.maxKeyDepth = depth
		}
	}
}

// Parse reads a TOML document from r and returns its root table.
//
// The input is consumed line by line to the end; the caller owns opening
// and closing whatever r wraps. Failure is immediate and carries a
// location, and there is no partial result: a document either parses whole
// or not at all.
func Parse(r io.Reader, opts ...Option) (*Table, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &parser{lexer: &lexer{sc: newScanner(r), opts: &o}, opts: &o}
	return p.parseDocument()
}

// ParseString parses a TOML document held in memory.
func ParseString(s string, opts ...Option) (*Table, error) {
	return Parse(strings.NewReader(s), opts...)
}

// parser drives the lexer through the document grammar: a sequence of
// key = value lines, blank lines and comments. Each pair merges into the
// root table builder as it is read, so duplicate and dotted keys land
// exactly like repeated Put calls would.
type parser struct {
	lexer *lexer
	opts  *options
}

func (p *parser) parseDocument() (*Table, error) {
	root := newTableBuilder(p.opts.maxKeyDepth).WithLocation(Location{Line: 1, Offset: 0})
	for {
		if err := p.lexer.skipCommentsAndLines(); err != nil {
			return nil, err
		}
		kind, err := p.lexer.peekToken()
		if err != nil {
			return nil, err
		}
		if kind == tokenEOF {
			break
		}
		if kind == tokenOpenBracket {
			return nil, &NotSupportedError{Feature: "table headers", Loc: p.lexer.sc.location()}
		}

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		kind, err = p.lexer.peekToken()
		if err != nil {
			return nil, err
		}
		if kind != tokenEquals {
			return nil, syntaxErrorf(p.lexer.sc.location(), "expected '=' after the key %s, but got %s", key, kind)
		}
		p.lexer.skipToken(tokenEquals)

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := root.Put(key, value); err != nil {
			return nil, err
		}
		if err := p.expectEndOfLine(); err != nil {
			return nil, err
		}
	}
	if err := p.lexer.sc.failure(); err != nil {
		return nil, &Error{Message: "reading input failed", cause: err}
	}
	return root.Build(), nil
}

// expectEndOfLine checks that nothing but a comment follows the value on
// its line. The trailing token is left for the main loop to consume.
func (p *parser) expectEndOfLine() error {
	kind, err := p.lexer.peekToken()
	if err != nil {
		return err
	}
	switch kind {
	case tokenEOL, tokenEOF, tokenComment:
		return nil
	}
	return syntaxErrorf(p.lexer.sc.location(), "expected the end of the line after a value, but got %s", kind)
}

// parseKey parses a dotted key: one or more parts separated by dots. The
// key's location is the first part's.
func (p *parser) parseKey() (Key, error) {
	if _, err := p.lexer.peekToken(); err != nil {
		return Key{}, err
	}
	startLoc := p.lexer.sc.location()

	part, err := p.parseKeyPart()
	if err != nil {
		return Key{}, err
	}
	parts := []string{part}
	for {
		kind, err := p.lexer.peekToken()
		if err != nil {
			return Key{}, err
		}
		if kind != tokenDot {
			break
		}
		p.lexer.skipToken(tokenDot)
		part, err := p.parseKeyPart()
		if err != nil {
			return Key{}, err
		}
		parts = append(parts, part)
	}
	return newKey(parts, &startLoc), nil
}

// parseKeyPart parses one segment: a quoted string, or a bare run of ASCII
// letters, digits, underscores and dashes. A digit or dash may open a bare
// segment, so "2disks" and "-prefixed" need no quotes.
func (p *parser) parseKeyPart() (string, error) {
	kind, err := p.lexer.peekToken()
	if err != nil {
		return "", err
	}
	switch kind {
	case tokenString, tokenLiteralString:
		return p.lexer.parseString(false)
	case tokenDigit, tokenMinus, tokenIdentifier:
		return p.lexer.takeWhile(isBareKeyChar), nil
	}
	return "", syntaxErrorf(p.lexer.sc.location(), "expected part of a key, but got %s", kind)
}

// parseValue parses the right-hand side of an assignment. Comment lines in
// front of the value are consumed, so a comment may separate a key from its
// value; a bare line break may not.
func (p *parser) parseValue() (Value, error) {
	if err := p.lexer.skipComments(); err != nil {
		return nil, err
	}
	kind, err := p.lexer.peekToken()
	if err != nil {
		return nil, err
	}
	loc := p.lexer.sc.location()

	switch kind {
	case tokenString, tokenLiteralString:
		s, err := p.lexer.parseString(true)
		if err != nil {
			return nil, err
		}
		return stringValue(s, &loc), nil
	case tokenPlus, tokenMinus:
		return p.lexer.parseNumber()
	case tokenDigit:
		if p.lexer.dateTimeAhead() {
			return p.lexer.parseDateTime()
		}
		return p.lexer.parseNumber()
	case tokenIdentifier:
		word := p.lexer.peekWord()
		switch word {
		case "true", "false":
			p.lexer.sc.skip(len(word))
			return boolValue(word == "true", &loc), nil
		case "inf", "nan":
			return p.lexer.parseNumber()
		}
		return nil, syntaxErrorf(loc, "expected a value, but got identifier %q", word)
	case tokenOpenBracket:
		return nil, &NotSupportedError{Feature: "inline arrays", Loc: loc}
	case tokenOpenBrace:
		return nil, &NotSupportedError{Feature: "inline tables", Loc: loc}
	}
	return nil, syntaxErrorf(loc, "expected a value, but got %s", kind)
}
