// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file derives electrical characteristics from raw I-V curve samples.
// All derivation happens once, at model construction; the results are
// immutable afterwards.
package descriptor

import (
	"math"

	"github.com/vk/ibisgo/internal/kw"
)

// curveImpedance computes the local resistance of an I-V curve at its
// measurement threshold, per process corner.
//
// The threshold is vmeas when the model declares one, otherwise half of the
// curve's own maximum sample voltage. The pullup curve is measured with this
// same rule before its voltages are reflected; that asymmetry is inherited
// behavior and is kept as-is.
func curveImpedance(samples []kw.IVSample, vmeas *float64) (kw.Triple, error) {
	if len(samples) < 2 {
		return kw.Triple{}, &InsufficientDataError{Count: len(samples)}
	}

	threshold := 0.0
	if vmeas != nil {
		threshold = *vmeas
	} else {
		maxV := samples[0].V
		for _, s := range samples[1:] {
			if s.V > maxV {
				maxV = s.V
			}
		}
		threshold = maxV / 2
	}

	// First sample at or above the threshold. The crossing must leave a
	// predecessor to form the delta from.
	ix := -1
	for i, s := range samples {
		if s.V >= threshold {
			ix = i
			break
		}
	}
	if ix <= 0 {
		return kw.Triple{}, &InsufficientDataError{Count: ix + 1}
	}

	dv := samples[ix].V - samples[ix-1].V
	r := func(hi, lo float64) float64 {
		return math.Abs(dv / (hi - lo))
	}
	return kw.Triple{
		Typ: r(samples[ix].I.Typ, samples[ix-1].I.Typ),
		Min: r(samples[ix].I.Min, samples[ix-1].I.Min),
		Max: r(samples[ix].I.Max, samples[ix-1].I.Max),
	}, nil
}

// reflectPullup rewrites pullup samples from their supply-relative form:
// voltages become rail − v and currents flip sign. This is a plotting and
// sign convention, not a physical inversion of the device.
func reflectPullup(samples []kw.IVSample, rail float64) []kw.IVSample {
	out := make([]kw.IVSample, len(samples))
	for i, s := range samples {
		out[i] = kw.IVSample{
			V: rail - s.V,
			I: kw.Triple{Typ: -s.I.Typ, Min: -s.I.Min, Max: -s.I.Max},
		}
	}
	return out
}

// slewRate averages the rising and falling typical ramp rates and converts
// from V/s to V/ns.
func slewRate(ramp kw.Ramp) float64 {
	return (ramp.Rising.Typ + ramp.Falling.Typ) / 2e9
}
