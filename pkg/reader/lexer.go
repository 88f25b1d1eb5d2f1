package reader

import (
	"strings"

	"github.com/koskinen/sexpr/pkg/types"
)

// lexer is a char-at-a-time scanner in the teacher's style (readChar /
// peekChar / position tracking), adapted to the grammar in §4.3: numbers
// are digit runs, atoms are any other non-delimiter run, strings decode
// \n \t \" \\ escapes, and ' ` , are single-character reader shorthands.
type lexer struct {
	src        []rune
	pos        int
	line, col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() (rune, bool) {
	r, ok := l.peek()
	if !ok {
		return 0, false
	}
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == '\'' || r == '`' || r == ',' || isWhitespace(r)
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *lexer) skipWhitespaceAndComments() {
	for {
		r, ok := l.peek()
		if !ok {
			return
		}
		if isWhitespace(r) {
			l.advance()
			continue
		}
		if r == ';' {
			for {
				r, ok := l.peek()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		return
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespaceAndComments()
	startLine, startCol := l.line, l.col
	r, ok := l.peek()
	if !ok {
		return token{Kind: tokEOF, Pos: position{startLine, startCol}}, nil
	}

	switch r {
	case '(':
		l.advance()
		return token{Kind: tokLParen, Pos: position{startLine, startCol}}, nil
	case ')':
		l.advance()
		return token{Kind: tokRParen, Pos: position{startLine, startCol}}, nil
	case '\'':
		l.advance()
		return token{Kind: tokQuote, Pos: position{startLine, startCol}}, nil
	case '`':
		l.advance()
		return token{Kind: tokBackquote, Pos: position{startLine, startCol}}, nil
	case ',':
		l.advance()
		return token{Kind: tokComma, Pos: position{startLine, startCol}}, nil
	case '"':
		return l.readString(startLine, startCol)
	}

	if isDigit(r) {
		return l.readNumber(startLine, startCol), nil
	}
	return l.readSymbol(startLine, startCol), nil
}

func (l *lexer) readNumber(line, col int) token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isDigit(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return token{Kind: tokNumber, Text: b.String(), Pos: position{line, col}}
}

func (l *lexer) readSymbol(line, col int) token {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || isDelimiter(r) {
			break
		}
		b.WriteRune(r)
		l.advance()
	}
	return token{Kind: tokSymbol, Text: b.String(), Pos: position{line, col}}
}

func (l *lexer) readString(line, col int) (token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		r, ok := l.advance()
		if !ok {
			return token{}, types.NewParseError(line, col, "unterminated string literal")
		}
		if r == '"' {
			return token{Kind: tokString, Text: b.String(), Pos: position{line, col}}, nil
		}
		if r == '\\' {
			esc, ok := l.advance()
			if !ok {
				return token{}, types.NewParseError(line, col, "unterminated escape in string literal")
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return token{}, types.NewParseError(line, col, "unknown string escape \\%c", esc)
			}
			continue
		}
		b.WriteRune(r)
	}
}
