// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package selection implements the cascading component → pin → model
// selection over a descriptor.
//
// Why an explicit cascade?
//
// Changing one selection silently invalidates the ones below it: a new
// component has a different pin set, a new pin resolves to a different model
// set. Modeling that as three update operations with a fixed reset rule
// (each change snaps dependents to the first valid option) keeps the
// derived fields consistent by construction, instead of scattering the
// invalidation logic across presentation callbacks.
//
// A State is single-owner: one live selection per descriptor instance.
// Callers needing concurrent access must serialize externally.
package selection

import (
	"fmt"

	"github.com/vk/ibisgo/internal/descriptor"
)

// State is the mutable selection over one descriptor. All other descriptor
// objects are immutable; this is the only thing that changes after load.
type State struct {
	desc *descriptor.Descriptor
	tx   bool

	component string
	pin       string
	model     string

	pins   []string
	models []string
}

// New creates a selection for a descriptor, filtered by direction (tx
// selects driving pins, rx everything else), and bootstraps it to the first
// component, which cascades to the first eligible pin and first model.
func New(d *descriptor.Descriptor, tx bool) (*State, error) {
	s := &State{desc: d, tx: tx}
	names := d.ComponentNames()
	if err := s.SetComponent(names[0]); err != nil {
		return nil, err
	}
	return s, nil
}

// SetComponent changes the selected component. The eligible pin set is
// recomputed and the pin selection snaps to its first element, which in turn
// recomputes the model set.
func (s *State) SetComponent(name string) error {
	c, ok := s.desc.Component(name)
	if !ok {
		return fmt.Errorf("selection: unknown component %q", name)
	}
	s.component = name
	s.pins = s.desc.EligiblePins(c, s.tx)
	if len(s.pins) == 0 {
		s.pin = ""
		s.models = nil
		s.model = ""
		return nil
	}
	return s.setPin(s.pins[0])
}

// SetPin changes the selected pin within the current component. The model
// set is recomputed and the model selection snaps to its first element.
func (s *State) SetPin(name string) error {
	for _, p := range s.pins {
		if p == name {
			return s.setPin(name)
		}
	}
	return fmt.Errorf("selection: pin %q is not eligible on component %q", name, s.component)
}

func (s *State) setPin(name string) error {
	c, _ := s.desc.Component(s.component)
	pin, _ := c.Pin(name)
	s.pin = name
	s.models = s.desc.ModelsFor(pin.Model)
	s.model = s.models[0]
	return nil
}

// SetModel changes the selected model within the current pin's model set.
// It does not cascade further.
func (s *State) SetModel(name string) error {
	for _, m := range s.models {
		if m == name {
			s.model = name
			return nil
		}
	}
	return fmt.Errorf("selection: model %q is not reachable from pin %q", name, s.pin)
}

// ComponentName returns the selected component's name.
func (s *State) ComponentName() string { return s.component }

// PinName returns the selected pin's name; empty when the direction filter
// left the component with no eligible pins.
func (s *State) PinName() string { return s.pin }

// ModelName returns the selected model's name.
func (s *State) ModelName() string { return s.model }

// Pins returns the eligible pins of the selected component, in file order.
func (s *State) Pins() []string {
	out := make([]string, len(s.pins))
	copy(out, s.pins)
	return out
}

// Models returns the model names reachable from the selected pin, in file
// order.
func (s *State) Models() []string {
	out := make([]string, len(s.models))
	copy(out, s.models)
	return out
}

// Component returns the selected component.
func (s *State) Component() *descriptor.Component {
	c, _ := s.desc.Component(s.component)
	return c
}

// Pin returns the selected pin.
func (s *State) Pin() (descriptor.Pin, bool) {
	if s.pin == "" {
		return descriptor.Pin{}, false
	}
	c, _ := s.desc.Component(s.component)
	return c.Pin(s.pin)
}

// Model returns the resolved Model object for the current selection, or nil
// when no pin is eligible.
func (s *State) Model() *descriptor.Model {
	if s.model == "" {
		return nil
	}
	m, _ := s.desc.Model(s.model)
	return m
}

// Executables resolves the selected model's executable pair for a platform.
// The boolean follows descriptor.ExecTable.Resolve: a miss is not an error.
func (s *State) Executables(p descriptor.Platform) (descriptor.ExecPair, bool) {
	m := s.Model()
	if m == nil {
		return descriptor.ExecPair{}, false
	}
	return m.Execs().Resolve(p)
}
