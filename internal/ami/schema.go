// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file flattens a parameter tree into a ConfigSchema: the UI-agnostic
// description any front end can render as a form.
//
// Why build a schema instead of rendering directly?
//
// The tree describes what a model's parameters are; which of them a user may
// edit, with what widget, bounds and default, is a separate question. The
// schema answers that question once, in data, so every front end (or none;
// a batch runner can read defaults straight out of it) gets the same
// behavior. Building is pure and deterministic: the same tree always yields
// a structurally identical schema.
package ami

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// FieldKind classifies the widget a field calls for.
type FieldKind int

const (
	Toggle FieldKind = iota
	BoundedNumber
	EnumChoice
	ReadOnlyDisplay
)

func (k FieldKind) String() string {
	switch k {
	case Toggle:
		return "Toggle"
	case BoundedNumber:
		return "BoundedNumber"
	case EnumChoice:
		return "EnumChoice"
	default:
		return "ReadOnlyDisplay"
	}
}

// Choice is one selectable alternative of an EnumChoice field.
type Choice struct {
	Label string
	Value cty.Value
}

// Field describes one editable or display-only form entry.
type Field struct {
	Name    string
	Kind    FieldKind
	Default cty.Value

	// Bounds; set only for BoundedNumber.
	Min cty.Value
	Max cty.Value

	// Alternatives; set only for EnumChoice.
	Choices []Choice

	Tooltip string
}

// Section is one group of the schema: its direct fields followed by nested
// sections. Horizontal is a layout hint, not behavior; only the root section
// carries it.
type Section struct {
	Label       string
	Description string
	Horizontal  bool
	Fields      []Field
	Sections    []Section
}

// BuildSchema flattens a parameter tree rooted at group into a schema. The
// root section is laid out horizontally, every nested section vertically.
// Parameters whose usage is Out or Info are excluded entirely.
func BuildSchema(root *Group) Section {
	return buildSection(root, true)
}

func buildSection(g *Group, horizontal bool) Section {
	sec := Section{
		Label:       g.Name,
		Description: g.Description,
		Horizontal:  horizontal,
	}

	names := g.ChildNames()
	sort.Strings(names)

	for _, name := range names {
		child, _ := g.Child(name)
		switch n := child.(type) {
		case *Param:
			// A leaf literally named "description" is the group's label
			// text, not a field.
			if name == "description" {
				if sec.Description == "" && n.Default.Type() == cty.String && !n.Default.IsNull() {
					sec.Description = n.Default.AsString()
				}
				continue
			}
			if f, ok := buildField(name, n); ok {
				sec.Fields = append(sec.Fields, f)
			}
		case *Group:
			sec.Sections = append(sec.Sections, buildSection(n, false))
		}
	}

	return sec
}

// buildField maps one leaf to a field descriptor, or reports false for
// non-editable leaves.
func buildField(name string, p *Param) (Field, bool) {
	if !p.Usage.Editable() {
		return Field{}, false
	}

	f := Field{Name: name, Tooltip: p.Description}

	switch {
	case p.Type == TypeBoolean:
		f.Kind = Toggle
		f.Default = p.Default

	case p.Format == FormatRange:
		f.Kind = BoundedNumber
		f.Default = p.Default
		f.Min = p.Min
		f.Max = p.Max

	case p.Format == FormatList && len(p.Labels) > 0:
		f.Kind = EnumChoice
		f.Choices = make([]Choice, len(p.Values))
		for i, v := range p.Values {
			f.Choices[i] = Choice{Label: p.Labels[i], Value: v}
		}
		// Default choice: the label whose value matches the declared
		// default, else the first label.
		f.Default = cty.StringVal(p.Labels[0])
		if p.Default != cty.NilVal {
			for i, v := range p.Values {
				if v.RawEquals(p.Default) {
					f.Default = cty.StringVal(p.Labels[i])
					break
				}
			}
		}

	case p.Format == FormatList:
		f.Kind = EnumChoice
		f.Choices = make([]Choice, len(p.Values))
		for i, v := range p.Values {
			f.Choices[i] = Choice{Label: valueLabel(v), Value: v}
		}
		if p.Default != cty.NilVal && !p.Default.IsNull() {
			f.Default = p.Default
		} else {
			f.Default = p.Values[0]
		}

	default:
		f.Kind = ReadOnlyDisplay
		f.Default = p.Default
	}

	return f, true
}

// valueLabel renders a cty value as display text for unlabeled choices.
func valueLabel(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return ""
	}
	switch {
	case v.Type().Equals(cty.String):
		return v.AsString()
	case v.Type().Equals(cty.Number):
		return v.AsBigFloat().Text('g', -1)
	case v.Type().Equals(cty.Bool):
		if v.True() {
			return "true"
		}
		return "false"
	default:
		return v.GoString()
	}
}
