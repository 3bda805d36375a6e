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

package lexer

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gogo-agent/cyphergraph/token"
)

func scanAll(src string) []token.Token {
	l := New([]byte(src))
	var out []token.Token
	for {
		tok := l.Scan()
		out = append(out, tok)
		if tok.Kind == token.EOF || tok.Kind == token.ERROR {
			break
		}
	}
	return out
}

func TestScan(t *testing.T) {

	Convey("Scanning a simple MATCH query", t, func() {
		toks := scanAll("MATCH (n:Person) WHERE n.name = 'A' RETURN n")
		kinds := make([]token.Kind, len(toks))
		for i, tok := range toks {
			kinds[i] = tok.Kind
		}
		So(kinds, ShouldResemble, []token.Kind{
			token.MATCH, token.LPAREN, token.IDENT, token.COLON, token.IDENT, token.RPAREN,
			token.WHERE, token.IDENT, token.DOT, token.IDENT, token.EQ, token.STRING,
			token.RETURN, token.IDENT, token.EOF,
		})
	})

	Convey("Keywords are case-insensitive, identifiers are case-sensitive", t, func() {
		toks := scanAll("match (N)")
		So(toks[0].Kind, ShouldEqual, token.MATCH)
		So(toks[2].Kind, ShouldEqual, token.IDENT)
		So(toks[2].Lit, ShouldEqual, "N")
	})

	Convey("Multi-char operators", t, func() {
		toks := scanAll("<> <= >= =~ -> <- <->")
		kinds := make([]token.Kind, 0)
		for _, tok := range toks {
			if tok.Kind != token.EOF {
				kinds = append(kinds, tok.Kind)
			}
		}
		So(kinds, ShouldResemble, []token.Kind{
			token.NEQ, token.LTE, token.GTE, token.REGEX, token.ARROWR, token.ARROWL, token.ARROWB,
		})
	})

	Convey("Comments are skipped", t, func() {
		toks := scanAll("MATCH // a comment\n(n)")
		So(toks[0].Kind, ShouldEqual, token.MATCH)
		So(toks[1].Kind, ShouldEqual, token.LPAREN)
	})

	Convey("Block comments are skipped", t, func() {
		toks := scanAll("MATCH /* skip\nme */ (n)")
		So(toks[0].Kind, ShouldEqual, token.MATCH)
		So(toks[1].Kind, ShouldEqual, token.LPAREN)
	})

	Convey("Unterminated block comment yields an Error token", t, func() {
		toks := scanAll("MATCH /* never closed")
		last := toks[len(toks)-1]
		So(last.Kind, ShouldEqual, token.ERROR)
		So(last.Lit, ShouldEqual, "Unterminated comment")
	})

	Convey("Unterminated string yields an Error token at the opening quote", t, func() {
		toks := scanAll("RETURN 'abc")
		last := toks[len(toks)-1]
		So(last.Kind, ShouldEqual, token.ERROR)
		So(last.Lit, ShouldEqual, "Unterminated string literal")
		So(last.Col, ShouldEqual, 8)
	})

	Convey("Escapes are preserved verbatim in string literals", t, func() {
		toks := scanAll(`'a\'b'`)
		So(toks[0].Kind, ShouldEqual, token.STRING)
		So(toks[0].Lit, ShouldEqual, `a\'b`)
	})

	Convey("Integer and float literals", t, func() {
		toks := scanAll("1 2.5 10")
		So(toks[0].Kind, ShouldEqual, token.INTEGER)
		So(toks[1].Kind, ShouldEqual, token.FLOAT)
		So(toks[2].Kind, ShouldEqual, token.INTEGER)
	})

	Convey("Params are scanned with a leading dollar stripped", t, func() {
		toks := scanAll("$name")
		So(toks[0].Kind, ShouldEqual, token.PARAM)
		So(toks[0].Lit, ShouldEqual, "name")
	})

}
