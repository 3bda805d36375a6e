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

package value

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gogo-agent/cyphergraph/cerr"
)

// col is the collator used to order KString values for Compare/SortLess:
// ORDER BY and the =, <>, <, <=, >, >= operators on strings use
// locale-aware collation, not a
// byte-wise comparison. Grounded on the teacher's util/comp.Comp, which
// holds a single package-level collate.Collator built once with
// collate.Loose for the same reason: collators are safe for concurrent
// use and expensive enough to build that constructing one per comparison
// would be wasteful.
var col = collate.New(language.Und, collate.Loose)

// Compare orders two scalar values of the same Kind. Null participates in
// ordering only against Null itself (equal); any other Null comparison is
// handled by the caller before Compare is reached, since null propagates
// rather than participating in ordering. Cross-type comparisons between
// non-null values yield a Mismatch error, the type-mismatch sentinel.
//
// This is grounded on the teacher's util/comp.Comp, generalized from
// sql.Order-driven collation to the closed Value sum type; unlike the
// teacher (which orders mismatched types by a fixed precedence so that
// ORDER BY never fails), this engine surfaces Mismatch for cross-type
// scalar comparisons instead.
func Compare(a, b Value) (int, error) {

	if a.Kind == KNull && b.Kind == KNull {
		return 0, nil
	}

	if a.Kind != b.Kind {
		return 0, cerr.New(cerr.Mismatch, "cannot compare %s with %s", a.TypeName(), b.TypeName())
	}

	switch a.Kind {

	case KBool:
		switch {
		case a.B == b.B:
			return 0, nil
		case !a.B:
			return -1, nil
		default:
			return 1, nil
		}

	case KInt:
		switch {
		case a.I == b.I:
			return 0, nil
		case a.I < b.I:
			return -1, nil
		default:
			return 1, nil
		}

	case KFloat:
		switch {
		case a.F == b.F:
			return 0, nil
		case a.F < b.F:
			return -1, nil
		default:
			return 1, nil
		}

	case KString:
		return col.CompareString(a.S, b.S), nil

	case KNodeRef, KRelRef:
		switch {
		case a.I == b.I:
			return 0, nil
		case a.I < b.I:
			return -1, nil
		default:
			return 1, nil
		}

	case KList:
		for i := 0; i < len(a.List) && i < len(b.List); i++ {
			c, err := Compare(a.List[i], b.List[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return len(a.List) - len(b.List), nil

	case KMap:
		ak := a.SortedKeys()
		bk := b.SortedKeys()
		for i := 0; i < len(ak) && i < len(bk); i++ {
			if ak[i] != bk[i] {
				return strings.Compare(ak[i], bk[i]), nil
			}
			av, _ := a.Get(ak[i])
			bv, _ := b.Get(bk[i])
			c, err := Compare(av, bv)
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return len(ak) - len(bk), nil
	}

	return 0, cerr.New(cerr.Mismatch, "uncomparable value of kind %d", a.Kind)
}

// SortLess orders values for ORDER BY: Null sorts least, ascending by
// default; the caller negates for DESC.
func SortLess(a, b Value) bool {
	if a.Kind == KNull && b.Kind == KNull {
		return false
	}
	if a.Kind == KNull {
		return true
	}
	if b.Kind == KNull {
		return false
	}
	c, err := Compare(a, b)
	if err != nil {
		// Incomparable cross-type keys fall back to Kind ordering so
		// Sort stays total and stable rather than erroring mid-query.
		return a.Kind < b.Kind
	}
	return c < 0
}
