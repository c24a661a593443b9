package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ibisgo/internal/kw"
)

func TestCurveImpedanceAtVmeas(t *testing.T) {
	// Two samples straddling vmeas = 0.6: |0.2 / 0.004| = 50 ohms on the
	// typical trace.
	vmeas := 0.6
	z, err := curveImpedance(fiftyOhmCurve(), &vmeas)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, z.Typ, 1e-9)
	assert.InDelta(t, 50.0, z.Min, 1e-9)
	assert.InDelta(t, 50.0, z.Max, 1e-9)
}

func TestCurveImpedanceDefaultThreshold(t *testing.T) {
	// Without vmeas the threshold is half of the curve's maximum voltage:
	// max = 4, threshold = 2, crossing between samples 1 and 2.
	samples := []kw.IVSample{
		{V: 0.0, I: kw.Triple{Typ: 0.000, Min: 0.000, Max: 0.000}},
		{V: 1.0, I: kw.Triple{Typ: 0.010, Min: 0.008, Max: 0.012}},
		{V: 2.0, I: kw.Triple{Typ: 0.030, Min: 0.028, Max: 0.032}},
		{V: 4.0, I: kw.Triple{Typ: 0.035, Min: 0.033, Max: 0.037}},
	}
	z, err := curveImpedance(samples, nil)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, z.Typ, 1e-9)
}

func TestCurveImpedanceNegativeSlopeIsUnsigned(t *testing.T) {
	vmeas := 0.6
	samples := []kw.IVSample{
		{V: 0.5, I: kw.Triple{Typ: 0.014, Min: 0.014, Max: 0.014}},
		{V: 0.7, I: kw.Triple{Typ: 0.010, Min: 0.010, Max: 0.010}},
	}
	z, err := curveImpedance(samples, &vmeas)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, z.Typ, 1e-9)
}

func TestCurveImpedanceInsufficientData(t *testing.T) {
	t.Run("fewer than two samples", func(t *testing.T) {
		_, err := curveImpedance([]kw.IVSample{{V: 0.5}}, nil)
		var idErr *InsufficientDataError
		require.ErrorAs(t, err, &idErr)
		assert.Equal(t, 1, idErr.Count)
	})

	t.Run("crossing at first sample", func(t *testing.T) {
		vmeas := 0.1
		_, err := curveImpedance(fiftyOhmCurve(), &vmeas)
		var idErr *InsufficientDataError
		require.ErrorAs(t, err, &idErr)
	})

	t.Run("no crossing at all", func(t *testing.T) {
		vmeas := 9.0
		_, err := curveImpedance(fiftyOhmCurve(), &vmeas)
		var idErr *InsufficientDataError
		require.ErrorAs(t, err, &idErr)
	})
}

func TestReflectPullup(t *testing.T) {
	out := reflectPullup(fiftyOhmCurve(), 1.8)
	require.Len(t, out, 2)
	assert.InDelta(t, 1.3, out[0].V, 1e-12)
	assert.InDelta(t, -0.010, out[0].I.Typ, 1e-12)
	assert.InDelta(t, -0.009, out[0].I.Min, 1e-12)
	assert.InDelta(t, -0.011, out[0].I.Max, 1e-12)
	assert.InDelta(t, 1.1, out[1].V, 1e-12)
}

func TestSlewRate(t *testing.T) {
	// Rates in V/s; the result is V/ns.
	ramp := kw.Ramp{Rising: kw.Triple{Typ: 1.0}, Falling: kw.Triple{Typ: 1.0}}
	assert.InDelta(t, 1.0e-9, slewRate(ramp), 1e-18)

	ramp = kw.Ramp{Rising: kw.Triple{Typ: 2.0e9}, Falling: kw.Triple{Typ: 1.0e9}}
	assert.InDelta(t, 1.5, slewRate(ramp), 1e-9)
}
