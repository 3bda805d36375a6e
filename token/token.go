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

// Package token defines the lexical token kinds produced by the lexer and
// consumed by the parser.
package token

// Kind identifies the class of a Token. The set is closed and fixed.
type Kind int

const (

	// special

	ILLEGAL Kind = iota
	EOF
	ERROR

	// literals

	literalsBeg

	IDENT
	STRING
	INTEGER
	FLOAT
	PARAM // $name

	literalsEnd

	// punctuation and operators

	opBeg

	DOT       // .
	COMMA     // ,
	COLON     // :
	PIPE      // |
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	LBRACE    // {
	RBRACE    // }

	ADD // +
	SUB // -
	MUL // *
	DIV // /
	MOD // %
	POW // ^

	EQ  // =
	NEQ // <>
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=
	REGEX // =~

	ARROWR  // ->
	ARROWL  // <-
	ARROWB  // <->

	opEnd

	// keywords

	kwBeg

	MATCH
	OPTIONAL
	WHERE
	RETURN
	CREATE
	MERGE
	SET
	DELETE
	DETACH
	REMOVE
	WITH
	UNWIND
	UNION
	ALL
	AS
	ORDER
	BY
	ASC
	DESC
	LIMIT
	SKIP
	DISTINCT
	AND
	OR
	XOR
	NOT
	IN
	STARTS
	ENDS
	CONTAINS
	IS
	NULLTOK
	TRUE
	FALSE
	CASE
	WHEN
	THEN
	ELSE
	END
	ON

	kwEnd
)

var names = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", ERROR: "ERROR",
	IDENT: "IDENT", STRING: "STRING", INTEGER: "INTEGER", FLOAT: "FLOAT", PARAM: "PARAM",
	DOT: ".", COMMA: ",", COLON: ":", PIPE: "|",
	LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]", LBRACE: "{", RBRACE: "}",
	ADD: "+", SUB: "-", MUL: "*", DIV: "/", MOD: "%", POW: "^",
	EQ: "=", NEQ: "<>", LT: "<", LTE: "<=", GT: ">", GTE: ">=", REGEX: "=~",
	ARROWR: "->", ARROWL: "<-", ARROWB: "<->",
	MATCH: "MATCH", OPTIONAL: "OPTIONAL", WHERE: "WHERE", RETURN: "RETURN",
	CREATE: "CREATE", MERGE: "MERGE", SET: "SET", DELETE: "DELETE", DETACH: "DETACH",
	REMOVE: "REMOVE", WITH: "WITH", UNWIND: "UNWIND", UNION: "UNION", ALL: "ALL",
	AS: "AS", ORDER: "ORDER", BY: "BY", ASC: "ASC", DESC: "DESC", LIMIT: "LIMIT",
	SKIP: "SKIP", DISTINCT: "DISTINCT", AND: "AND", OR: "OR", XOR: "XOR", NOT: "NOT",
	IN: "IN", STARTS: "STARTS", ENDS: "ENDS", CONTAINS: "CONTAINS", IS: "IS",
	NULLTOK: "NULL", TRUE: "TRUE", FALSE: "FALSE", CASE: "CASE", WHEN: "WHEN",
	THEN: "THEN", ELSE: "ELSE", END: "END", ON: "ON",
}

// String renders a Kind for diagnostics and pretty-printing.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsOperator reports whether k lies in the operator/punctuation class.
func (k Kind) IsOperator() bool { return k > opBeg && k < opEnd }

// IsKeyword reports whether k lies in the keyword class.
func (k Kind) IsKeyword() bool { return k > kwBeg && k < kwEnd }

// Keywords maps the case-insensitive spelling of every reserved word to
// its Kind. Built once at init from the names table so the keyword set
// and the identifier-validation reserved-word set used by the write
// engine cannot drift apart.
var Keywords = make(map[string]Kind)

func init() {
	for k := kwBeg + 1; k < kwEnd; k++ {
		Keywords[names[k]] = k
	}
	// NULL, TRUE and FALSE lie in the keyword range above, so they are
	// reserved words for identifier validation too; NULL is set again
	// here to the same Kind.
	Keywords["NULL"] = NULLTOK
}

// Lookup returns the keyword Kind for the upper-cased spelling of lit, or
// IDENT if lit is not a keyword. Matching is case-insensitive; callers
// pass the already upper-cased literal.
func Lookup(upper string) Kind {
	if k, ok := Keywords[upper]; ok {
		return k
	}
	return IDENT
}

// Token is a single lexical token: its Kind, its text (for a string
// literal, the contents between the quotes; for ERROR, the error
// message), and its source position.
type Token struct {
	Kind Kind
	Lit  string
	Line int
	Col  int
}

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Lit != "" {
		return t.Lit
	}
	return t.Kind.String()
}
