// Package kw defines the keyword mapping handed over by the descriptor
// grammar parser. The parser is an external collaborator; everything it
// produces arrives here as a nested, insertion-ordered mapping from keyword
// name to value.
//
// Why an ordered mapping?
//
// Descriptor files are order-sensitive in places a plain Go map cannot
// express: the first pin of a component and the first alternative of a model
// selector are the defaults the selection cascade snaps to. Map preserves
// the order in which keys were set, which mirrors file order.
package kw

// Triple is a typ/min/max corner triple, used for voltage ranges,
// temperature ranges, ramp rates and curve currents.
type Triple struct {
	Typ float64
	Min float64
	Max float64
}

// RLC is the parasitic resistance/inductance/capacitance triple attached to
// a pin or a package.
type RLC struct {
	R float64
	L float64
	C float64
}

// IVSample is one point of an I-V curve: an output voltage and the measured
// current at each process corner.
type IVSample struct {
	V float64
	I Triple
}

// Ramp holds the rising and falling dV/dt rates of an output model, in
// volts per second.
type Ramp struct {
	Rising  Triple
	Falling Triple
}

// PinRef binds a pin to a model (or model selector) name and its parasitics.
type PinRef struct {
	Model string
	RLC   RLC
}

// SelectorAlt is one alternative of a model selector: a model name plus the
// parasitics to use when that alternative is chosen.
type SelectorAlt struct {
	Model string
	RLC   RLC
}

// ExecEntry is one row of a model's algorithmic-model table: an OS tag, a
// pointer width, and the executable file list in file order.
type ExecEntry struct {
	OS    string
	Bits  int
	Files []string
}

// Map is an insertion-ordered keyword mapping. The zero value is an empty
// mapping ready for use.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: map[string]any{}}
}

// Set stores a value under a keyword. Re-setting an existing keyword
// replaces the value but keeps the keyword's original position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the raw value stored under a keyword.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether a keyword is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keywords.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keywords in insertion order. The returned slice is a copy.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// GetString returns the string stored under a keyword.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.values[key].(string)
	return v, ok
}

// GetFloat returns the number stored under a keyword.
func (m *Map) GetFloat(key string) (float64, bool) {
	v, ok := m.values[key].(float64)
	return v, ok
}

// GetMap returns the nested mapping stored under a keyword.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.values[key].(*Map)
	return v, ok
}

// GetTriple returns the typ/min/max triple stored under a keyword.
func (m *Map) GetTriple(key string) (Triple, bool) {
	v, ok := m.values[key].(Triple)
	return v, ok
}

// GetRLC returns the parasitic triple stored under a keyword.
func (m *Map) GetRLC(key string) (RLC, bool) {
	v, ok := m.values[key].(RLC)
	return v, ok
}

// GetPinRef returns the pin binding stored under a keyword.
func (m *Map) GetPinRef(key string) (PinRef, bool) {
	v, ok := m.values[key].(PinRef)
	return v, ok
}

// GetSamples returns the I-V curve stored under a keyword.
func (m *Map) GetSamples(key string) ([]IVSample, bool) {
	v, ok := m.values[key].([]IVSample)
	return v, ok
}

// GetRamp returns the ramp rates stored under a keyword.
func (m *Map) GetRamp(key string) (Ramp, bool) {
	v, ok := m.values[key].(Ramp)
	return v, ok
}

// GetExecs returns the algorithmic-model table rows stored under a keyword.
func (m *Map) GetExecs(key string) ([]ExecEntry, bool) {
	v, ok := m.values[key].([]ExecEntry)
	return v, ok
}

// GetSelectorAlts returns the selector alternatives stored under a keyword.
func (m *Map) GetSelectorAlts(key string) ([]SelectorAlt, bool) {
	v, ok := m.values[key].([]SelectorAlt)
	return v, ok
}
