// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ami models the parameter-definition tree of an algorithmic model
// and flattens it into a UI-agnostic configuration schema.
//
// Why a tagged union for tree nodes?
//
// A tree position holds either a parameter definition or a nested group.
// Expressing that as a closed Node interface with exactly two
// implementations lets traversal dispatch exhaustively with a type switch,
// instead of probing values at runtime to see what they look like.
package ami

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// Node is one position in the parameter tree: either a *Param leaf or a
// nested *Group. The interface is closed; no other implementations exist.
type Node interface {
	isNode()
}

func (*Param) isNode() {}
func (*Group) isNode() {}

// Group is an internal tree node: a named collection of parameters and
// sub-groups. Child names are unique and case-sensitive. Groups are built
// once and never mutated after the tree is handed out.
type Group struct {
	Name        string
	Description string

	names    []string
	children map[string]Node
}

// NewGroup returns an empty group.
func NewGroup(name, description string) *Group {
	return &Group{
		Name:        name,
		Description: description,
		children:    map[string]Node{},
	}
}

// Add inserts a child node. Duplicate names are construction errors.
func (g *Group) Add(name string, n Node) error {
	if _, ok := g.children[name]; ok {
		return fmt.Errorf("group %q: duplicate child %q", g.Name, name)
	}
	g.names = append(g.names, name)
	g.children[name] = n
	return nil
}

// Child returns a child node by name.
func (g *Group) Child(name string) (Node, bool) {
	n, ok := g.children[name]
	return n, ok
}

// ChildNames returns the children in insertion order. The returned slice is
// a copy.
func (g *Group) ChildNames() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of children.
func (g *Group) Len() int {
	return len(g.names)
}

// numberOf extracts a cty number for comparison. Null, unset and non-number
// values report false.
func numberOf(v cty.Value) (*big.Float, bool) {
	if v == cty.NilVal || v.IsNull() || !v.Type().Equals(cty.Number) {
		return nil, false
	}
	return v.AsBigFloat(), true
}
