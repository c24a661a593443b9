// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Model structure: the behavioral description of one
// I/O buffer. A Model is built eagerly from its keyword sub-mapping and
// validated on the spot; output-capable models additionally derive their
// output impedance and slew rate during construction.
package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/ibisgo/internal/kw"
)

// ModelType classifies an I/O buffer model.
type ModelType int

const (
	ModelTypeUnknown ModelType = iota
	ModelTypeInput
	ModelTypeOutput
	ModelTypeIO
	ModelTypeThreeState
	ModelTypeOpenDrain
	ModelTypeOpenSink
	ModelTypeOpenSource
	ModelTypeTerminator
	ModelTypeSeries
	ModelTypeSeriesSwitch
)

var modelTypeTokens = map[string]ModelType{
	"input":         ModelTypeInput,
	"output":        ModelTypeOutput,
	"i/o":           ModelTypeIO,
	"3-state":       ModelTypeThreeState,
	"three_state":   ModelTypeThreeState,
	"open_drain":    ModelTypeOpenDrain,
	"open_sink":     ModelTypeOpenSink,
	"open_source":   ModelTypeOpenSource,
	"terminator":    ModelTypeTerminator,
	"series":        ModelTypeSeries,
	"series_switch": ModelTypeSeriesSwitch,
}

// ParseModelType maps a file token to a ModelType, case-insensitively.
// Unknown tokens yield ModelTypeUnknown; the raw token is preserved on the
// Model for display.
func ParseModelType(token string) ModelType {
	if t, ok := modelTypeTokens[strings.ToLower(token)]; ok {
		return t
	}
	return ModelTypeUnknown
}

func (t ModelType) String() string {
	switch t {
	case ModelTypeInput:
		return "Input"
	case ModelTypeOutput:
		return "Output"
	case ModelTypeIO:
		return "I/O"
	case ModelTypeThreeState:
		return "3-state"
	case ModelTypeOpenDrain:
		return "Open_drain"
	case ModelTypeOpenSink:
		return "Open_sink"
	case ModelTypeOpenSource:
		return "Open_source"
	case ModelTypeTerminator:
		return "Terminator"
	case ModelTypeSeries:
		return "Series"
	case ModelTypeSeriesSwitch:
		return "Series_switch"
	default:
		return "Unknown"
	}
}

// Driving reports whether the type drives the line: only Output and I/O
// models carry I-V curves and ramps, and only they are transmit-eligible.
func (t ModelType) Driving() bool {
	return t == ModelTypeOutput || t == ModelTypeIO
}

// Model is an immutable I/O buffer behavioral description.
type Model struct {
	Name    string
	Type    ModelType
	RawType string

	// Optional reference values. Nil means the file did not declare one.
	CComp *float64
	Cref  *float64
	Vref  *float64
	Vmeas *float64
	Rref  *float64

	TRange kw.Triple
	VRange kw.Triple

	// Populated only for driving (Output / I/O) models.
	Ramp            *kw.Ramp
	Pulldown        []kw.IVSample
	Pullup          []kw.IVSample
	PullupReflected []kw.IVSample
	ZPulldown       kw.Triple
	ZPullup         kw.Triple
	Zout            float64
	Slew            float64

	execs *ExecTable
}

// newModel builds and validates one model from its keyword sub-mapping.
func newModel(name string, sub *kw.Map) (*Model, error) {
	m := &Model{Name: name}

	rawType, ok := sub.GetString("model_type")
	if !ok || rawType == "" {
		return nil, &MissingKeywordError{Keyword: "model_type", Owner: ownerModel(name)}
	}
	m.RawType = rawType
	m.Type = ParseModelType(rawType)

	m.CComp = optFloat(sub, "c_comp")
	m.Cref = optFloat(sub, "cref")
	m.Vref = optFloat(sub, "vref")
	m.Vmeas = optFloat(sub, "vmeas")
	m.Rref = optFloat(sub, "rref")

	if tr, ok := sub.GetTriple("temperature_range"); ok {
		m.TRange = tr
	}
	vr, ok := sub.GetTriple("voltage_range")
	if !ok {
		return nil, &MissingKeywordError{Keyword: "voltage_range", Owner: ownerModel(name)}
	}
	m.VRange = vr

	if m.Type.Driving() {
		if err := m.deriveElectrical(sub); err != nil {
			return nil, err
		}
	}

	if entries, ok := sub.GetExecs("algorithmic_model"); ok {
		m.execs = newExecTable(entries)
	}

	return m, nil
}

// deriveElectrical validates the curves a driving model must carry and
// computes zout and slew from them.
func (m *Model) deriveElectrical(sub *kw.Map) error {
	owner := ownerModel(m.Name)

	pd, ok := sub.GetSamples("pulldown")
	if !ok {
		return &MissingKeywordError{Keyword: "pulldown", Owner: owner}
	}
	pu, ok := sub.GetSamples("pullup")
	if !ok {
		return &MissingKeywordError{Keyword: "pullup", Owner: owner}
	}
	ramp, ok := sub.GetRamp("ramp")
	if !ok {
		return &MissingKeywordError{Keyword: "ramp", Owner: owner}
	}

	zpd, err := curveImpedance(pd, m.Vmeas)
	if err != nil {
		return tagCurveErr(err, owner, "pulldown")
	}
	// The pullup branch is measured on the raw, supply-relative samples;
	// reflection happens after.
	zpu, err := curveImpedance(pu, m.Vmeas)
	if err != nil {
		return tagCurveErr(err, owner, "pullup")
	}

	m.Pulldown = pd
	m.Pullup = pu
	m.PullupReflected = reflectPullup(pu, m.VRange.Typ)
	m.ZPulldown = zpd
	m.ZPullup = zpu
	m.Zout = (zpd.Typ + zpu.Typ) / 2
	m.Ramp = &ramp
	m.Slew = slewRate(ramp)
	return nil
}

// Execs returns the model's executable table; nil when the file declared no
// algorithmic model.
func (m *Model) Execs() *ExecTable {
	return m.execs
}

func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model Type:\t%s\n", m.RawType)
	fmt.Fprintf(&b, "C_comp:    \t%s\n", fmtOpt(m.CComp))
	fmt.Fprintf(&b, "Cref:      \t%s\n", fmtOpt(m.Cref))
	fmt.Fprintf(&b, "Vref:      \t%s\n", fmtOpt(m.Vref))
	fmt.Fprintf(&b, "Vmeas:     \t%s\n", fmtOpt(m.Vmeas))
	fmt.Fprintf(&b, "Rref:      \t%s\n", fmtOpt(m.Rref))
	fmt.Fprintf(&b, "Temperature Range:\t%v\n", m.TRange)
	fmt.Fprintf(&b, "Voltage Range:    \t%v\n", m.VRange)
	if !m.execs.Empty() {
		b.WriteString("Algorithmic Model:\n")
		lastBits := -1
		for _, p := range m.execs.Platforms() {
			if p.Bits != lastBits {
				fmt.Fprintf(&b, "\t%d-bit:\n", p.Bits)
				lastBits = p.Bits
			}
			files, _ := m.execs.Files(p)
			label := "Other"
			if p.OS == OSWindows {
				label = "Windows"
			}
			fmt.Fprintf(&b, "\t\t%s: %v\n", label, files)
		}
	}
	if m.Type.Driving() {
		fmt.Fprintf(&b, "Zout:      \t%.1f Ohms\n", m.Zout)
		fmt.Fprintf(&b, "Slew Rate: \t%.2f V/ns\n", m.Slew)
	}
	return b.String()
}

func ownerModel(name string) string {
	return "model " + name
}

func optFloat(sub *kw.Map, key string) *float64 {
	if v, ok := sub.GetFloat(key); ok {
		return &v
	}
	return nil
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "(n/a)"
	}
	return fmt.Sprintf("%g", *v)
}

// tagCurveErr fills in the owner and curve of an InsufficientDataError
// raised below the model layer.
func tagCurveErr(err error, owner, curve string) error {
	var ie *InsufficientDataError
	if errors.As(err, &ie) {
		ie.Owner = owner
		ie.Curve = curve
	}
	return err
}
