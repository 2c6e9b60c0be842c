package toml

import (
	"strconv"
	"unicode/utf16"
)

// escapeReplacement returns the rune a basic-string escape letter stands
// for, or -1 when the letter is not a recognized escape. The unicode escapes
// \u and \U are handled separately by the lexer.
func escapeReplacement(c rune) rune {
	switch c {
	case 'b':
		return '\b'
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case '"':
		return '"'
	case '\\':
		return '\\'
	}
	return -1
}

// appendQuoted appends s as a double-quoted JSON string. The common escapes
// stay readable; everything else outside printable ASCII becomes a \u escape,
// with astral code points split into surrogate pairs the way JSON requires.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		dst = appendEscapedRune(dst, r)
	}
	return append(dst, '"')
}

func appendEscapedRune(dst []byte, r rune) []byte {
	switch r {
	case '\n':
		return append(dst, '\\', 'n')
	case '\t':
		return append(dst, '\\', 't')
	case '"':
		return append(dst, '\\', '"')
	case '\\':
		return append(dst, '\\', '\\')
	}
	if r >= 0x20 && r < 0x7f {
		return append(dst, byte(r))
	}
	if r > 0xffff {
		hi, lo := utf16.EncodeRune(r)
		dst = appendHexEscape(dst, hi)
		return appendHexEscape(dst, lo)
	}
	return appendHexEscape(dst, r)
}

func appendHexEscape(dst []byte, r rune) []byte {
	dst = append(dst, '\\', 'u')
	hex := strconv.FormatUint(uint64(uint32(r)), 16)
	for pad := len(hex); pad < 4; pad++ {
		dst = append(dst, '0')
	}
	return append(dst, hex...)
}
