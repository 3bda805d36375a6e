// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer turns Cypher query text into a stream of token.Token
// values, grounded on the teacher's sql.scanner but operating on a
// borrowed byte slice rather than a buffered io.Reader.
package lexer

import (
	"strings"

	"github.com/gogo-agent/cyphergraph/token"
)

const eof = rune(0)

// Lexer scans a borrowed byte slice one token at a time. Scan is called
// repeatedly by the parser until it returns a token.EOF.
type Lexer struct {
	src  []byte
	pos  int
	line int
	col  int
}

// New returns a Lexer over src. src is borrowed; the Lexer never copies
// or mutates it.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) at(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// Scan returns the next token. Whitespace and both comment forms are
// skipped transparently.
func (l *Lexer) Scan() token.Token {

	for {
		l.skipBlank()

		if l.peekByte() == '/' && l.at(1) == '/' {
			l.skipLineComment()
			continue
		}
		if l.peekByte() == '/' && l.at(1) == '*' {
			if tok, ok := l.skipBlockComment(); !ok {
				return tok
			}
			continue
		}

		break
	}

	line, col := l.line, l.col
	ch := l.peekByte()

	if ch == 0 {
		return token.Token{Kind: token.EOF, Line: line, Col: col}
	}

	if isLetter(ch) {
		return l.scanIdent(line, col)
	}

	if isDigit(ch) {
		return l.scanNumber(line, col)
	}

	if ch == '\'' || ch == '"' {
		return l.scanString(line, col)
	}

	if ch == '$' {
		l.advance()
		start := l.pos
		for isLetter(l.peekByte()) || isDigit(l.peekByte()) {
			l.advance()
		}
		return token.Token{Kind: token.PARAM, Lit: string(l.src[start:l.pos]), Line: line, Col: col}
	}

	return l.scanOperator(line, col)

}

func (l *Lexer) skipBlank() {
	for isBlank(l.peekByte()) {
		l.advance()
	}
}

func (l *Lexer) skipLineComment() {
	for l.peekByte() != 0 && l.peekByte() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() (token.Token, bool) {
	line, col := l.line, l.col
	l.advance()
	l.advance()
	for {
		if l.peekByte() == 0 {
			return token.Token{Kind: token.ERROR, Lit: "Unterminated comment", Line: line, Col: col}, false
		}
		if l.peekByte() == '*' && l.at(1) == '/' {
			l.advance()
			l.advance()
			return token.Token{}, true
		}
		l.advance()
	}
}

func (l *Lexer) scanIdent(line, col int) token.Token {
	start := l.pos
	for isLetter(l.peekByte()) || isDigit(l.peekByte()) {
		l.advance()
	}
	lit := string(l.src[start:l.pos])
	kind := token.Lookup(strings.ToUpper(lit))
	return token.Token{Kind: kind, Lit: lit, Line: line, Col: col}
}

func (l *Lexer) scanNumber(line, col int) token.Token {
	start := l.pos
	kind := token.INTEGER
	for isDigit(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '.' && isDigit(l.at(1)) {
		kind = token.FLOAT
		l.advance()
		for isDigit(l.peekByte()) {
			l.advance()
		}
	}
	return token.Token{Kind: kind, Lit: string(l.src[start:l.pos]), Line: line, Col: col}
}

func (l *Lexer) scanString(line, col int) token.Token {
	quote := l.advance()
	var b strings.Builder
	for {
		ch := l.peekByte()
		if ch == 0 {
			return token.Token{Kind: token.ERROR, Lit: "Unterminated string literal", Line: line, Col: col}
		}
		if ch == quote {
			l.advance()
			break
		}
		if ch == '\\' {
			l.advance()
			esc := l.peekByte()
			if esc == 0 {
				return token.Token{Kind: token.ERROR, Lit: "Unterminated string literal", Line: line, Col: col}
			}
			b.WriteByte('\\')
			b.WriteByte(esc)
			l.advance()
			continue
		}
		b.WriteByte(ch)
		l.advance()
	}
	return token.Token{Kind: token.STRING, Lit: b.String(), Line: line, Col: col}
}

func (l *Lexer) scanOperator(line, col int) token.Token {
	ch := l.advance()

	two := func(next byte, k token.Kind, lit string) (token.Token, bool) {
		if l.peekByte() == next {
			l.advance()
			return token.Token{Kind: k, Lit: lit, Line: line, Col: col}, true
		}
		return token.Token{}, false
	}

	switch ch {
	case '.':
		return token.Token{Kind: token.DOT, Lit: ".", Line: line, Col: col}
	case ',':
		return token.Token{Kind: token.COMMA, Lit: ",", Line: line, Col: col}
	case ':':
		return token.Token{Kind: token.COLON, Lit: ":", Line: line, Col: col}
	case '|':
		return token.Token{Kind: token.PIPE, Lit: "|", Line: line, Col: col}
	case '(':
		return token.Token{Kind: token.LPAREN, Lit: "(", Line: line, Col: col}
	case ')':
		return token.Token{Kind: token.RPAREN, Lit: ")", Line: line, Col: col}
	case '[':
		return token.Token{Kind: token.LBRACK, Lit: "[", Line: line, Col: col}
	case ']':
		return token.Token{Kind: token.RBRACK, Lit: "]", Line: line, Col: col}
	case '{':
		return token.Token{Kind: token.LBRACE, Lit: "{", Line: line, Col: col}
	case '}':
		return token.Token{Kind: token.RBRACE, Lit: "}", Line: line, Col: col}
	case '+':
		return token.Token{Kind: token.ADD, Lit: "+", Line: line, Col: col}
	case '-':
		if t, ok := two('>', token.ARROWR, "->"); ok {
			return t
		}
		return token.Token{Kind: token.SUB, Lit: "-", Line: line, Col: col}
	case '*':
		return token.Token{Kind: token.MUL, Lit: "*", Line: line, Col: col}
	case '/':
		return token.Token{Kind: token.DIV, Lit: "/", Line: line, Col: col}
	case '%':
		return token.Token{Kind: token.MOD, Lit: "%", Line: line, Col: col}
	case '^':
		return token.Token{Kind: token.POW, Lit: "^", Line: line, Col: col}
	case '=':
		if t, ok := two('~', token.REGEX, "=~"); ok {
			return t
		}
		return token.Token{Kind: token.EQ, Lit: "=", Line: line, Col: col}
	case '<':
		if t, ok := two('>', token.NEQ, "<>"); ok {
			return t
		}
		if t, ok := two('=', token.LTE, "<="); ok {
			return t
		}
		if l.peekByte() == '-' {
			l.advance()
			if l.peekByte() == '>' {
				l.advance()
				return token.Token{Kind: token.ARROWB, Lit: "<->", Line: line, Col: col}
			}
			return token.Token{Kind: token.ARROWL, Lit: "<-", Line: line, Col: col}
		}
		return token.Token{Kind: token.LT, Lit: "<", Line: line, Col: col}
	case '>':
		if t, ok := two('=', token.GTE, ">="); ok {
			return t
		}
		return token.Token{Kind: token.GT, Lit: ">", Line: line, Col: col}
	}

	return token.Token{Kind: token.ILLEGAL, Lit: string(ch), Line: line, Col: col}
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
