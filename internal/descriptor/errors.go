// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the typed errors raised while constructing a Descriptor.
// Construction is all-or-nothing: any of these aborts the whole build rather
// than yielding a partially valid object.
package descriptor

import "fmt"

// MissingSectionError reports a required top-level section (`components` or
// `models`) that is absent or empty. It echoes the parser diagnostics so the
// caller sees why the section may have failed to parse.
type MissingSectionError struct {
	Section     string
	Diagnostics string
}

func (e *MissingSectionError) Error() string {
	if e.Diagnostics == "" {
		return fmt.Sprintf("descriptor has no %q section", e.Section)
	}
	return fmt.Sprintf("descriptor has no %q section; parser messages:\n%s", e.Section, e.Diagnostics)
}

// MissingKeywordError reports a required keyword absent from a named
// component or model.
type MissingKeywordError struct {
	Keyword string
	Owner   string
}

func (e *MissingKeywordError) Error() string {
	return fmt.Sprintf("%s: missing required keyword %q", e.Owner, e.Keyword)
}

// InsufficientDataError reports an I-V curve or ramp that carries too few
// samples to derive anything from, or a curve that never crosses the
// measurement threshold.
type InsufficientDataError struct {
	Owner string
	Curve string
	Count int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s curve has insufficient data (%d usable samples)", e.Owner, e.Curve, e.Count)
}

// UnresolvedSelectorError reports a pin or selector alternative that names a
// model absent from the descriptor.
type UnresolvedSelectorError struct {
	Ref   string
	Pin   string
	Owner string
}

func (e *UnresolvedSelectorError) Error() string {
	if e.Pin == "" {
		return fmt.Sprintf("%s: selector alternative references unknown model %q", e.Owner, e.Ref)
	}
	return fmt.Sprintf("%s: pin %q references unknown model or selector %q", e.Owner, e.Pin, e.Ref)
}
