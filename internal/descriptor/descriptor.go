// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package descriptor provides the typed, in-memory model of an electrical
// interface descriptor file: its components, pins, I/O buffer models and
// model-selector indirections.
//
// Why a separate model layer?
//
// The grammar parser is an external collaborator; it hands over a nested
// keyword mapping plus a diagnostics string. This package turns that mapping
// into a validated, strongly-typed object graph. All validation and all
// derived quantities (output impedance, slew rate, the executable lookup
// table) are settled eagerly at construction, so everything downstream
// (selection cascades, presentation, simulation) works on immutable values
// and never re-checks the file's shape.
//
// Parser diagnostics that did not prevent construction are retained verbatim
// and exposed read-only; they are never escalated to hard failures here.
package descriptor

import (
	"fmt"
	"strings"

	"github.com/vk/ibisgo/internal/kw"
)

// dateUnavailable is the sentinel exposed when a file carries no date.
const dateUnavailable = "(n/a)"

// Descriptor is the root of the typed model: file metadata plus the
// component, model and model-selector inventories, in file order.
type Descriptor struct {
	Version  float64
	FileName string
	FileRev  string
	Date     string

	compNames []string
	comps     map[string]*Component

	modelNames []string
	models     map[string]*Model

	selNames  []string
	selectors map[string][]kw.SelectorAlt

	diagnostics string
}

// New builds a Descriptor from the parser's keyword mapping and diagnostics
// string. Construction is eager and all-or-nothing: every component and
// model is validated, and every pin and selector alternative must resolve.
func New(mapping *kw.Map, diagnostics string) (*Descriptor, error) {
	d := &Descriptor{diagnostics: diagnostics, Date: dateUnavailable}

	if v, ok := mapping.GetFloat("ibis_ver"); ok {
		d.Version = v
	}
	if s, ok := mapping.GetString("file_name"); ok {
		d.FileName = s
	}
	if s, ok := mapping.GetString("file_rev"); ok {
		d.FileRev = s
	}
	if s, ok := mapping.GetString("date"); ok && s != "" {
		d.Date = s
	}

	compMap, ok := mapping.GetMap("components")
	if !ok || compMap.Len() == 0 {
		return nil, &MissingSectionError{Section: "components", Diagnostics: diagnostics}
	}
	modelMap, ok := mapping.GetMap("models")
	if !ok || modelMap.Len() == 0 {
		return nil, &MissingSectionError{Section: "models", Diagnostics: diagnostics}
	}

	d.comps = make(map[string]*Component, compMap.Len())
	for _, name := range compMap.Keys() {
		sub, ok := compMap.GetMap(name)
		if !ok {
			return nil, &MissingKeywordError{Keyword: name, Owner: "components"}
		}
		c, err := newComponent(name, sub)
		if err != nil {
			return nil, err
		}
		d.compNames = append(d.compNames, name)
		d.comps[name] = c
	}

	d.models = make(map[string]*Model, modelMap.Len())
	for _, name := range modelMap.Keys() {
		sub, ok := modelMap.GetMap(name)
		if !ok {
			return nil, &MissingKeywordError{Keyword: name, Owner: "models"}
		}
		m, err := newModel(name, sub)
		if err != nil {
			return nil, err
		}
		d.modelNames = append(d.modelNames, name)
		d.models[name] = m
	}

	d.selectors = map[string][]kw.SelectorAlt{}
	if selMap, ok := mapping.GetMap("model_selectors"); ok {
		for _, name := range selMap.Keys() {
			alts, ok := selMap.GetSelectorAlts(name)
			if !ok {
				return nil, &MissingKeywordError{Keyword: name, Owner: "model_selectors"}
			}
			// A selector with no alternatives would give any pin referencing
			// it an empty model set and break the cascade's first-element
			// snap, so it fails construction like any other invalid object.
			if len(alts) == 0 {
				return nil, &MissingKeywordError{Keyword: "alternative", Owner: "model selector " + name}
			}
			d.selNames = append(d.selNames, name)
			d.selectors[name] = alts
		}
	}

	if err := d.resolveReferences(); err != nil {
		return nil, err
	}

	return d, nil
}

// resolveReferences checks that every selector alternative and every pin
// reference names something that exists. A dangling name would otherwise
// surface only when the selection cascade reaches it.
func (d *Descriptor) resolveReferences() error {
	for _, sname := range d.selNames {
		for _, alt := range d.selectors[sname] {
			if _, ok := d.models[alt.Model]; !ok {
				return &UnresolvedSelectorError{Ref: alt.Model, Owner: "model selector " + sname}
			}
		}
	}
	for _, cname := range d.compNames {
		c := d.comps[cname]
		for _, pname := range c.pinNames {
			ref := c.pins[pname].Model
			if _, ok := d.selectors[ref]; ok {
				continue
			}
			if _, ok := d.models[ref]; !ok {
				return &UnresolvedSelectorError{Ref: ref, Pin: pname, Owner: ownerComponent(cname)}
			}
		}
	}
	return nil
}

// Diagnostics returns the parser's accumulated warnings, verbatim.
func (d *Descriptor) Diagnostics() string {
	return d.diagnostics
}

// ComponentNames returns the components in file order.
func (d *Descriptor) ComponentNames() []string {
	out := make([]string, len(d.compNames))
	copy(out, d.compNames)
	return out
}

// Component returns one component by name.
func (d *Descriptor) Component(name string) (*Component, bool) {
	c, ok := d.comps[name]
	return c, ok
}

// ModelNames returns the models in file order.
func (d *Descriptor) ModelNames() []string {
	out := make([]string, len(d.modelNames))
	copy(out, d.modelNames)
	return out
}

// Model returns one model by name.
func (d *Descriptor) Model(name string) (*Model, bool) {
	m, ok := d.models[name]
	return m, ok
}

// SelectorNames returns the model selectors in file order.
func (d *Descriptor) SelectorNames() []string {
	out := make([]string, len(d.selNames))
	copy(out, d.selNames)
	return out
}

// Selector returns one selector's alternatives, in file order.
func (d *Descriptor) Selector(name string) ([]kw.SelectorAlt, bool) {
	alts, ok := d.selectors[name]
	return alts, ok
}

// ModelsFor resolves a pin's model reference to the set of model names it
// can stand for: every alternative of a selector hit, in file order, or the
// singleton of the name itself.
func (d *Descriptor) ModelsFor(ref string) []string {
	if alts, ok := d.selectors[ref]; ok {
		names := make([]string, len(alts))
		for i, alt := range alts {
			names[i] = alt.Model
		}
		return names
	}
	return []string{ref}
}

// EligiblePins filters a component's pins by direction. A pin is
// transmit-eligible when the first model it resolves to is a driving type;
// every other pin is receive-eligible. The two sets never overlap.
func (d *Descriptor) EligiblePins(c *Component, tx bool) []string {
	var out []string
	for _, pname := range c.pinNames {
		mods := d.ModelsFor(c.pins[pname].Model)
		m := d.models[mods[0]]
		if m.Type.Driving() == tx {
			out = append(out, pname)
		}
	}
	return out
}

// Info renders the metadata and inventory report for the file.
func (d *Descriptor) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ibis_ver:\t%g\n", d.Version)
	fmt.Fprintf(&b, "file_name:\t%s\n", d.FileName)
	fmt.Fprintf(&b, "file_rev:\t%s\n", d.FileRev)
	fmt.Fprintf(&b, "date:\t\t%s\n", d.Date)
	b.WriteString("\nComponents:\n==========\n")
	for _, name := range d.compNames {
		fmt.Fprintf(&b, "\n%s:\n---\n%s", name, d.comps[name])
	}
	b.WriteString("\nModel Selectors:\n===============\n")
	for _, name := range d.selNames {
		fmt.Fprintf(&b, "%s\n", name)
	}
	b.WriteString("\nModels:\n======\n")
	for _, name := range d.modelNames {
		fmt.Fprintf(&b, "\n%s:\n---\n%s", name, d.models[name])
	}
	return b.String()
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("descriptor %q", d.FileName)
}
