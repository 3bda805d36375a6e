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

package db

import (
	"github.com/sirupsen/logrus"

	"github.com/gogo-agent/cyphergraph/log"
	"github.com/gogo-agent/cyphergraph/storage"
	"github.com/gogo-agent/cyphergraph/value"
)

// Context is the execution context threaded through a query's iterator
// tree: it holds a reference to the storage adapter, a mapping
// variable-name → Value, an arena of auxiliary allocations released when
// the context is destroyed, and a mutable error slot.
// Grounded on the teacher's context.go, which carries request-scoped
// state on a context.Context; this engine has no network request to hang
// state off, so the equivalent state is a plain struct built once per
// query and passed down the iterator tree by reference.
type Context struct {
	*logrus.Entry

	Adapter storage.Adapter

	vars  map[string]value.Value
	arena []interface{}
	err   error
}

// NewContext constructs a Context bound to adapter, with its own logging
// entry grounded on the teacher's log.WithPrefix convention.
func NewContext(adapter storage.Adapter) *Context {
	return &Context{
		Entry:   log.WithPrefix("query"),
		Adapter: adapter,
		vars:    make(map[string]value.Value),
	}
}

// Bind updates or inserts v under name, deep-copying it so later
// mutation of the caller's copy cannot alias the bound value. Variable
// names collapse on string equality: binding the same name twice
// overwrites the prior value, last write wins.
func (c *Context) Bind(name string, v value.Value) {
	c.vars[name] = v.Clone()
}

// Get returns the Value bound to name, or Null if name is unbound.
func (c *Context) Get(name string) value.Value {
	if v, ok := c.vars[name]; ok {
		return v
	}
	return value.Value{Kind: value.KNull}
}

// Track records an auxiliary allocation (an intermediate string, list, or
// map built while evaluating an expression) in the context's arena, so it
// is not released until the whole query finishes: arena allocations made
// for intermediate strings/collections are released by the execution
// context at the end of the query.
func (c *Context) Track(v interface{}) {
	c.arena = append(c.arena, v)
}

// SetErr records err in the context's mutable error slot if one is not
// already set; the first error wins, matching the propagation policy
// that iterators propagate errors from child to parent without
// recovery.
func (c *Context) SetErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the context's recorded error, if any.
func (c *Context) Err() error {
	return c.err
}

// Destroy frees every bound value and every auxiliary allocation. Safe to
// call more than once.
func (c *Context) Destroy() {
	c.vars = nil
	c.arena = nil
}
