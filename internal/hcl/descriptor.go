// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes a descriptor document into the keyword mapping consumed
// by the descriptor package.
//
// Why decode into a mapping instead of the model directly?
//
// The descriptor package owns validation: required keywords, curve sizes,
// reference resolution. Decoding into the loose keyword mapping keeps this
// layer a pure format adapter, the same contract the text-grammar parser
// satisfies, so a document missing a required keyword still decodes and
// fails with the descriptor package's typed error, not an HCL one.
package hcl

import (
	"context"
	"fmt"

	"github.com/vk/ibisgo/internal/kw"
)

type descriptorDoc struct {
	Version  *float64 `hcl:"ibis_ver"`
	FileName *string  `hcl:"file_name"`
	FileRev  *string  `hcl:"file_rev"`
	Date     *string  `hcl:"date"`

	Components []*componentBlock `hcl:"component,block"`
	Models     []*modelBlock     `hcl:"model,block"`
	Selectors  []*selectorBlock  `hcl:"model_selector,block"`
}

type componentBlock struct {
	Name         string          `hcl:"name,label"`
	Manufacturer *string         `hcl:"manufacturer"`
	Package      *rlcBlock       `hcl:"package,block"`
	Pins         []*pinBlock     `hcl:"pin,block"`
	DiffPins     []*diffPinBlock `hcl:"diff_pin,block"`
}

type rlcBlock struct {
	R float64 `hcl:"r,optional"`
	L float64 `hcl:"l,optional"`
	C float64 `hcl:"c,optional"`
}

type pinBlock struct {
	Name  string  `hcl:"name,label"`
	Model string  `hcl:"model"`
	R     float64 `hcl:"r,optional"`
	L     float64 `hcl:"l,optional"`
	C     float64 `hcl:"c,optional"`
}

type diffPinBlock struct {
	Pin       string `hcl:"name,label"`
	Inverting string `hcl:"inverting"`
}

type modelBlock struct {
	Name      string   `hcl:"name,label"`
	ModelType *string  `hcl:"model_type"`
	CComp     *float64 `hcl:"c_comp"`
	Cref      *float64 `hcl:"cref"`
	Vref      *float64 `hcl:"vref"`
	Vmeas     *float64 `hcl:"vmeas"`
	Rref      *float64 `hcl:"rref"`

	TemperatureRange []float64 `hcl:"temperature_range,optional"`
	VoltageRange     []float64 `hcl:"voltage_range,optional"`

	Ramp *rampBlock `hcl:"ramp,block"`

	// Curves are rows of [v, i_typ, i_min, i_max]; trailing corners may be
	// omitted and default to the typical value.
	Pulldown [][]float64 `hcl:"pulldown,optional"`
	Pullup   [][]float64 `hcl:"pullup,optional"`

	Executables []*execBlock `hcl:"executable,block"`
}

type rampBlock struct {
	Rising  []float64 `hcl:"rising"`
	Falling []float64 `hcl:"falling"`
}

type execBlock struct {
	OS    string   `hcl:"os"`
	Bits  int      `hcl:"bits"`
	Files []string `hcl:"files"`
}

type selectorBlock struct {
	Name string      `hcl:"name,label"`
	Alts []*altBlock `hcl:"alternative,block"`
}

type altBlock struct {
	Model string  `hcl:"model"`
	R     float64 `hcl:"r,optional"`
	L     float64 `hcl:"l,optional"`
	C     float64 `hcl:"c,optional"`
}

// LoadDescriptor decodes one descriptor document into a keyword mapping plus
// the accumulated non-fatal diagnostics text.
func (l *Loader) LoadDescriptor(ctx context.Context, path string) (*kw.Map, string, error) {
	var doc descriptorDoc
	diags, err := l.decodeFile(ctx, path, &doc)
	if err != nil {
		return nil, "", err
	}

	m := kw.New()
	if doc.Version != nil {
		m.Set("ibis_ver", *doc.Version)
	}
	if doc.FileName != nil {
		m.Set("file_name", *doc.FileName)
	}
	if doc.FileRev != nil {
		m.Set("file_rev", *doc.FileRev)
	}
	if doc.Date != nil {
		m.Set("date", *doc.Date)
	}

	if len(doc.Components) > 0 {
		comps := kw.New()
		for _, c := range doc.Components {
			comps.Set(c.Name, componentMapping(c))
		}
		m.Set("components", comps)
	}

	if len(doc.Models) > 0 {
		models := kw.New()
		for _, mb := range doc.Models {
			sub, err := modelMapping(mb)
			if err != nil {
				return nil, "", fmt.Errorf("%s: model %q: %w", path, mb.Name, err)
			}
			models.Set(mb.Name, sub)
		}
		m.Set("models", models)
	}

	if len(doc.Selectors) > 0 {
		sels := kw.New()
		for _, s := range doc.Selectors {
			alts := make([]kw.SelectorAlt, len(s.Alts))
			for i, a := range s.Alts {
				alts[i] = kw.SelectorAlt{Model: a.Model, RLC: kw.RLC{R: a.R, L: a.L, C: a.C}}
			}
			sels.Set(s.Name, alts)
		}
		m.Set("model_selectors", sels)
	}

	return m, warningText(diags), nil
}

func componentMapping(c *componentBlock) *kw.Map {
	sub := kw.New()
	if c.Manufacturer != nil {
		sub.Set("manufacturer", *c.Manufacturer)
	}
	if c.Package != nil {
		sub.Set("package", kw.RLC{R: c.Package.R, L: c.Package.L, C: c.Package.C})
	}
	if len(c.Pins) > 0 {
		pins := kw.New()
		for _, p := range c.Pins {
			pins.Set(p.Name, kw.PinRef{Model: p.Model, RLC: kw.RLC{R: p.R, L: p.L, C: p.C}})
		}
		sub.Set("pin", pins)
	}
	if len(c.DiffPins) > 0 {
		diffs := kw.New()
		for _, dp := range c.DiffPins {
			diffs.Set(dp.Pin, dp.Inverting)
		}
		sub.Set("diff_pin", diffs)
	}
	return sub
}

func modelMapping(mb *modelBlock) (*kw.Map, error) {
	sub := kw.New()
	if mb.ModelType != nil {
		sub.Set("model_type", *mb.ModelType)
	}
	setOptFloat(sub, "c_comp", mb.CComp)
	setOptFloat(sub, "cref", mb.Cref)
	setOptFloat(sub, "vref", mb.Vref)
	setOptFloat(sub, "vmeas", mb.Vmeas)
	setOptFloat(sub, "rref", mb.Rref)

	if t, ok := tripleOf(mb.TemperatureRange); ok {
		sub.Set("temperature_range", t)
	}
	if t, ok := tripleOf(mb.VoltageRange); ok {
		sub.Set("voltage_range", t)
	}
	if mb.Ramp != nil {
		rising, ok := tripleOf(mb.Ramp.Rising)
		if !ok {
			return nil, fmt.Errorf("ramp rising rate is empty")
		}
		falling, ok := tripleOf(mb.Ramp.Falling)
		if !ok {
			return nil, fmt.Errorf("ramp falling rate is empty")
		}
		sub.Set("ramp", kw.Ramp{Rising: rising, Falling: falling})
	}

	if len(mb.Pulldown) > 0 {
		samples, err := sampleRows(mb.Pulldown)
		if err != nil {
			return nil, fmt.Errorf("pulldown: %w", err)
		}
		sub.Set("pulldown", samples)
	}
	if len(mb.Pullup) > 0 {
		samples, err := sampleRows(mb.Pullup)
		if err != nil {
			return nil, fmt.Errorf("pullup: %w", err)
		}
		sub.Set("pullup", samples)
	}

	if len(mb.Executables) > 0 {
		entries := make([]kw.ExecEntry, len(mb.Executables))
		for i, e := range mb.Executables {
			entries[i] = kw.ExecEntry{OS: e.OS, Bits: e.Bits, Files: e.Files}
		}
		sub.Set("algorithmic_model", entries)
	}

	return sub, nil
}

func setOptFloat(m *kw.Map, key string, v *float64) {
	if v != nil {
		m.Set(key, *v)
	}
}

// tripleOf fills a typ/min/max triple from a corner list, padding omitted
// corners with the typical value.
func tripleOf(vals []float64) (kw.Triple, bool) {
	switch len(vals) {
	case 0:
		return kw.Triple{}, false
	case 1:
		return kw.Triple{Typ: vals[0], Min: vals[0], Max: vals[0]}, true
	case 2:
		return kw.Triple{Typ: vals[0], Min: vals[1], Max: vals[1]}, true
	default:
		return kw.Triple{Typ: vals[0], Min: vals[1], Max: vals[2]}, true
	}
}

func sampleRows(rows [][]float64) ([]kw.IVSample, error) {
	samples := make([]kw.IVSample, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d has %d values, need at least [v, i_typ]", i, len(row))
		}
		t, _ := tripleOf(row[1:])
		samples[i] = kw.IVSample{V: row[0], I: t}
	}
	return samples, nil
}
