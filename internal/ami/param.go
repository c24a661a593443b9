// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the parameter-definition leaf of the tree: a single
// named, typed, bounded behavioral-model parameter.
package ami

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Usage declares who may write a parameter.
type Usage int

const (
	UsageIn Usage = iota
	UsageOut
	UsageInOut
	UsageInfo
)

// ParseUsage maps a file token to a Usage.
func ParseUsage(token string) (Usage, error) {
	switch strings.ToLower(token) {
	case "in":
		return UsageIn, nil
	case "out":
		return UsageOut, nil
	case "inout":
		return UsageInOut, nil
	case "info":
		return UsageInfo, nil
	default:
		return 0, fmt.Errorf("unknown parameter usage %q", token)
	}
}

func (u Usage) String() string {
	switch u {
	case UsageIn:
		return "In"
	case UsageOut:
		return "Out"
	case UsageInOut:
		return "InOut"
	default:
		return "Info"
	}
}

// Editable reports whether a user may set the parameter. Out and Info
// parameters are display-only and never become schema fields.
func (u Usage) Editable() bool {
	return u == UsageIn || u == UsageInOut
}

// Type is a parameter's declared value type.
type Type int

const (
	TypeFloat Type = iota
	TypeInteger
	TypeString
	TypeBoolean
	TypeCorner
)

// ParseType maps a file token to a Type.
func ParseType(token string) (Type, error) {
	switch strings.ToLower(token) {
	case "float":
		return TypeFloat, nil
	case "integer":
		return TypeInteger, nil
	case "string":
		return TypeString, nil
	case "boolean":
		return TypeBoolean, nil
	case "corner":
		return TypeCorner, nil
	default:
		return 0, fmt.Errorf("unknown parameter type %q", token)
	}
}

func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "Float"
	case TypeInteger:
		return "Integer"
	case TypeString:
		return "String"
	case TypeBoolean:
		return "Boolean"
	default:
		return "Corner"
	}
}

// Format is a parameter's value layout.
type Format int

const (
	FormatValue Format = iota
	FormatRange
	FormatList
)

// ParseFormat maps a file token to a Format.
func ParseFormat(token string) (Format, error) {
	switch strings.ToLower(token) {
	case "value":
		return FormatValue, nil
	case "range":
		return FormatRange, nil
	case "list":
		return FormatList, nil
	default:
		return 0, fmt.Errorf("unknown parameter format %q", token)
	}
}

func (f Format) String() string {
	switch f {
	case FormatValue:
		return "Value"
	case FormatRange:
		return "Range"
	default:
		return "List"
	}
}

// Param is one parameter definition. Values are cty so the tree stays typed
// without committing to a Go representation per parameter type.
type Param struct {
	Name    string
	Usage   Usage
	Type    Type
	Format  Format
	Default cty.Value

	// Range bounds; meaningful only for FormatRange.
	Min cty.Value
	Max cty.Value

	// List candidates and their optional human-readable labels; meaningful
	// only for FormatList. When Labels is non-empty it parallels Values.
	Values []cty.Value
	Labels []string

	Description string
}

// NewParam validates a parameter definition and returns it. Range formats
// require min ≤ default ≤ max; List formats require at least one candidate
// and, when labels are given, one label per candidate.
func NewParam(p Param) (*Param, error) {
	switch p.Format {
	case FormatRange:
		lo, ok := numberOf(p.Min)
		if !ok {
			return nil, fmt.Errorf("parameter %q: Range format requires a numeric min", p.Name)
		}
		hi, ok := numberOf(p.Max)
		if !ok {
			return nil, fmt.Errorf("parameter %q: Range format requires a numeric max", p.Name)
		}
		def, ok := numberOf(p.Default)
		if !ok {
			return nil, fmt.Errorf("parameter %q: Range format requires a numeric default", p.Name)
		}
		if lo.Cmp(def) > 0 || def.Cmp(hi) > 0 {
			return nil, fmt.Errorf("parameter %q: default is outside [min, max]", p.Name)
		}
	case FormatList:
		if len(p.Values) == 0 {
			return nil, fmt.Errorf("parameter %q: List format requires at least one candidate value", p.Name)
		}
		if len(p.Labels) > 0 && len(p.Labels) != len(p.Values) {
			return nil, fmt.Errorf("parameter %q: %d labels for %d candidate values", p.Name, len(p.Labels), len(p.Values))
		}
	}
	return &p, nil
}
