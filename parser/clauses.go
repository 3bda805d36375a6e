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

package parser

import (
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/token"
)

// updatingClause case: "CREATE" pattern
func (p *Parser) parseCreateClause() (*ast.Node, error) {
	p.advance()
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Create, "", pat), nil
}

// updatingClause case: "MERGE" pattern ["ON CREATE" setClause] ["ON MATCH" setClause]
func (p *Parser) parseMergeClause() (*ast.Node, error) {
	p.advance()

	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}

	m := ast.New(ast.MergeClause, "", pat)

	for p.at(token.ON) {
		p.advance()
		switch p.cur.Kind {
		case token.CREATE:
			p.advance()
			set, err := p.parseSetItems()
			if err != nil {
				return nil, err
			}
			m.Add(ast.New(ast.OnCreate, "", set))
		case token.MATCH:
			p.advance()
			set, err := p.parseSetItems()
			if err != nil {
				return nil, err
			}
			m.Add(ast.New(ast.OnMatch, "", set))
		default:
			return nil, p.unexpected(token.CREATE, token.MATCH)
		}
	}

	return m, nil
}

// updatingClause case: "SET" setItem ("," setItem)*
func (p *Parser) parseSetClause() (*ast.Node, error) {
	p.advance()
	return p.parseSetItems()
}

func (p *Parser) parseSetItems() (*ast.Node, error) {

	set := ast.New(ast.SetClause, "")

	for {
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}

		if p.at(token.COLON) {
			labels, err := p.parseLabelList()
			if err != nil {
				return nil, err
			}
			item := ast.New(ast.SetItem, id.Lit, labels)
			item.Flags |= ast.FlagLabelOp
			set.Add(item)
		} else {
			if _, err := p.expect(token.DOT); err != nil {
				return nil, err
			}
			prop, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			set.Add(ast.New(ast.SetItem, id.Lit+"."+prop.Lit, val))
		}

		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return set, nil

}

// updatingClause case: REMOVE removeItem ("," removeItem)*
// removeItem = ident "." ident | ident ":" label
func (p *Parser) parseRemoveClause() (*ast.Node, error) {
	p.advance()

	rm := ast.New(ast.RemoveClause, "")

	for {
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}

		if p.at(token.COLON) {
			labels, err := p.parseLabelList()
			if err != nil {
				return nil, err
			}
			item := ast.New(ast.SetItem, id.Lit, labels)
			item.Flags |= ast.FlagLabelOp
			rm.Add(item)
		} else {
			if _, err := p.expect(token.DOT); err != nil {
				return nil, err
			}
			prop, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			rm.Add(ast.New(ast.SetItem, id.Lit+"."+prop.Lit))
		}

		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return rm, nil
}

// updatingClause case: ("DETACH")? "DELETE" expr ("," expr)*
func (p *Parser) parseDeleteClause() (*ast.Node, error) {

	detach := false
	if p.at(token.DETACH) {
		p.advance()
		detach = true
	}

	if _, err := p.expect(token.DELETE); err != nil {
		return nil, err
	}

	kind := ast.DeleteClause
	if detach {
		kind = ast.DetachDelete
	}

	del := ast.New(kind, "")
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		del.Add(expr)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return del, nil

}

// returnClause = "RETURN" ["DISTINCT"] projectionItem ("," projectionItem)*
//               [orderBy] [skip] [limit]
func (p *Parser) parseReturnClause() (*ast.Node, error) {

	p.advance()

	ret := ast.New(ast.Return, "")

	if p.at(token.DISTINCT) {
		p.advance()
		ret.Flags |= ast.FlagDistinct
	}

	list := ast.New(ast.ProjectionList, "")
	for {
		item, err := p.parseProjectionItem()
		if err != nil {
			return nil, err
		}
		list.Add(item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	ret.Add(list)

	if p.at(token.ORDER) {
		ob, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		ret.Add(ob)
	}

	if p.at(token.SKIP) {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ret.Add(ast.New(ast.Skip, "", expr))
	}

	if p.at(token.LIMIT) {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ret.Add(ast.New(ast.Limit, "", expr))
	}

	return ret, nil

}

// projectionItem = expr ["AS" ident]
func (p *Parser) parseProjectionItem() (*ast.Node, error) {

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	alias := ""
	if p.at(token.AS) {
		p.advance()
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		alias = id.Lit
	}

	return ast.New(ast.ProjectionItem, alias, expr), nil

}

// orderBy = "ORDER" "BY" sortItem ("," sortItem)*
func (p *Parser) parseOrderBy() (*ast.Node, error) {

	p.advance()
	if _, err := p.expect(token.BY); err != nil {
		return nil, err
	}

	list := ast.New(ast.SortList, "")

	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		item := ast.New(ast.SortItem, "", expr)
		item.Flags |= ast.FlagAsc
		if p.at(token.ASC) {
			p.advance()
		} else if p.at(token.DESC) {
			p.advance()
			item.Flags &^= ast.FlagAsc
			item.Flags |= ast.FlagDesc
		}
		list.Add(item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return ast.New(ast.OrderBy, "", list), nil

}
