// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Component structure: one physical part from a
// descriptor file, with its manufacturer, package parasitics, and pin map.
package descriptor

import (
	"fmt"
	"strings"

	"github.com/vk/ibisgo/internal/kw"
)

// Pin is one terminal of a component: the model (or model selector) it is
// bound to, plus its parasitic triple.
type Pin struct {
	Model string
	RLC   kw.RLC
}

// Component is an immutable view of one component entry.
type Component struct {
	Name         string
	Manufacturer string
	Package      kw.RLC

	pinNames []string
	pins     map[string]Pin

	// DiffPins maps a pin to its inverting companion, when the component
	// declares differential pairs.
	DiffPins map[string]string
}

// newComponent builds and validates one component from its keyword
// sub-mapping. Manufacturer, package and a non-empty pin map are mandatory.
func newComponent(name string, sub *kw.Map) (*Component, error) {
	c := &Component{Name: name}

	mfr, ok := sub.GetString("manufacturer")
	if !ok || mfr == "" {
		return nil, &MissingKeywordError{Keyword: "manufacturer", Owner: ownerComponent(name)}
	}
	c.Manufacturer = mfr

	pkg, ok := sub.GetRLC("package")
	if !ok {
		return nil, &MissingKeywordError{Keyword: "package", Owner: ownerComponent(name)}
	}
	c.Package = pkg

	pinMap, ok := sub.GetMap("pin")
	if !ok || pinMap.Len() == 0 {
		return nil, &MissingKeywordError{Keyword: "pin", Owner: ownerComponent(name)}
	}
	c.pins = make(map[string]Pin, pinMap.Len())
	for _, pname := range pinMap.Keys() {
		ref, ok := pinMap.GetPinRef(pname)
		if !ok {
			return nil, &MissingKeywordError{Keyword: "pin " + pname, Owner: ownerComponent(name)}
		}
		c.pinNames = append(c.pinNames, pname)
		c.pins[pname] = Pin{Model: ref.Model, RLC: ref.RLC}
	}

	if diffs, ok := sub.GetMap("diff_pin"); ok {
		c.DiffPins = make(map[string]string, diffs.Len())
		for _, pname := range diffs.Keys() {
			if inv, ok := diffs.GetString(pname); ok {
				c.DiffPins[pname] = inv
			}
		}
	}

	return c, nil
}

// PinNames returns the component's pins in file order.
func (c *Component) PinNames() []string {
	out := make([]string, len(c.pinNames))
	copy(out, c.pinNames)
	return out
}

// Pin returns one pin by name.
func (c *Component) Pin(name string) (Pin, bool) {
	p, ok := c.pins[name]
	return p, ok
}

func (c *Component) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Manufacturer:\t%s\n", c.Manufacturer)
	fmt.Fprintf(&b, "Package:     \t%v\n", c.Package)
	b.WriteString("Pins:\n")
	for _, pname := range c.pinNames {
		p := c.pins[pname]
		fmt.Fprintf(&b, "    %s:\t%s %v\n", pname, p.Model, p.RLC)
	}
	return b.String()
}

func ownerComponent(name string) string {
	return "component " + name
}
