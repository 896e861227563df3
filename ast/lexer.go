package ast

import (
	"strings"
	"unicode"

	"github.com/filterspirit/filterspirit/sourcemap"
)

// Lexer turns spirit-filter source text into a stream of Tokens.
// Whitespace and `#` line comments are discarded.
type Lexer struct {
	src    string
	pos    int
	tokens []Token
}

// NewLexer constructs a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Lex runs the lexer to completion and returns every token, terminated
// by a single TokEOF token.
func (l *Lexer) Lex() []Token {
	for {
		tok := l.next()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return l.tokens
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if unicode.IsSpace(rune(c)) {
			l.pos++
			continue
		}
		break
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isSocketLetter reports whether c is one of the socket-spec color
// letters.
func isSocketLetter(c byte) bool {
	switch c {
	case 'R', 'G', 'B', 'W', 'A', 'D':
		return true
	}
	return false
}

func (l *Lexer) next() Token {
	l.skipWhitespaceAndComments()
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Origin: sourcemap.Range{Start: start, Len: 0}}
	}

	c := l.src[l.pos]

	switch c {
	case '$':
		l.pos++
		return l.finish(TokDollar, start)
	case '{':
		l.pos++
		return l.finish(TokLBrace, start)
	case '}':
		l.pos++
		return l.finish(TokRBrace, start)
	case ':':
		l.pos++
		return l.finish(TokColon, start)
	case ',':
		l.pos++
		return l.finish(TokComma, start)
	case '.':
		// A lone '.' that is not part of a fractional literal (handled below).
		l.pos++
		return l.finish(TokDot, start)
	case '&':
		if l.peekByteAt(1) == '&' {
			l.pos += 2
			return l.finish(TokAmpAmp, start)
		}
		l.pos++
		return l.finish(TokIllegal, start)
	case '<':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return l.finish(TokLessEq, start)
		}
		return l.finish(TokLess, start)
	case '>':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return l.finish(TokGreaterEq, start)
		}
		return l.finish(TokGreater, start)
	case '=':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return l.finish(TokEq, start)
		}
		return l.finish(TokAssign, start)
	case '!':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
		}
		return l.finish(TokNotEq, start)
	case '"':
		return l.lexString(start)
	}

	if isDigit(c) {
		return l.lexNumberOrSocket(start)
	}
	if isIdentStart(c) {
		return l.lexIdent(start)
	}

	l.pos++
	return l.finish(TokIllegal, start)
}

func (l *Lexer) finish(kind TokenKind, start int) Token {
	return Token{Kind: kind, Text: l.src[start:l.pos], Origin: sourcemap.Range{Start: start, Len: l.pos - start}}
}

func (l *Lexer) lexString(start int) Token {
	l.pos++ // consume opening quote
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++ // consume closing quote
	}
	tok := l.finish(TokString, start)
	tok.Text = strings.Trim(tok.Text, `"`)
	return tok
}

// lexNumberOrSocket disambiguates an integer literal, a fractional
// literal (requires an explicit '.'), and a socket literal like
// `5RGB`/`RR`/`3GGG`.
func (l *Lexer) lexNumberOrSocket(start int) Token {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	// fractional literal: INT '.' INT
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		l.pos++ // consume '.'
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		return l.finish(TokFrac, start)
	}
	// socket literal: digits immediately followed by RGBWAD letters
	if isSocketLetter(l.peekByte()) {
		for l.pos < len(l.src) && isSocketLetter(l.src[l.pos]) {
			l.pos++
		}
		return l.finish(TokSocketLiteral, start)
	}
	return l.finish(TokInt, start)
}

func (l *Lexer) lexIdent(start int) Token {
	// A bare run of socket letters with no leading digit (e.g. "RR") is
	// also a socket literal.
	if isSocketLetter(l.src[l.pos]) {
		save := l.pos
		for l.pos < len(l.src) && isSocketLetter(l.src[l.pos]) {
			l.pos++
		}
		// Only a socket literal if the run isn't actually a longer
		// identifier (e.g. "Red" starts with 'R' but continues with
		// non-socket letters).
		if l.pos >= len(l.src) || !isIdentCont(l.src[l.pos]) {
			return l.finish(TokSocketLiteral, start)
		}
		l.pos = save
	}
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return l.finish(TokIdent, start)
}
