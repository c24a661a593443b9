// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes a parameter-definition document into the ami package's
// typed tree.
package hcl

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/ibisgo/internal/ami"
)

type paramDoc struct {
	Groups []*groupBlock `hcl:"group,block"`
}

type groupBlock struct {
	Name        string        `hcl:"name,label"`
	Description *string       `hcl:"description"`
	Params      []*paramBlock `hcl:"param,block"`
	Groups      []*groupBlock `hcl:"group,block"`
}

type paramBlock struct {
	Name        string     `hcl:"name,label"`
	Usage       string     `hcl:"usage"`
	Type        string     `hcl:"type"`
	Format      *string    `hcl:"format"`
	Default     *cty.Value `hcl:"default"`
	Min         *cty.Value `hcl:"min"`
	Max         *cty.Value `hcl:"max"`
	Values      *cty.Value `hcl:"values"`
	Labels      []string   `hcl:"labels,optional"`
	Description *string    `hcl:"description"`
}

// LoadParams decodes one parameter-definition document into its tree root.
// The document must contain exactly one top-level group.
func (l *Loader) LoadParams(ctx context.Context, path string) (*ami.Group, error) {
	var doc paramDoc
	if _, err := l.decodeFile(ctx, path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Groups) != 1 {
		return nil, fmt.Errorf("%s: expected exactly one top-level group, found %d", path, len(doc.Groups))
	}
	root, err := buildGroup(doc.Groups[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func buildGroup(gb *groupBlock) (*ami.Group, error) {
	g := ami.NewGroup(gb.Name, strOf(gb.Description))

	for _, pb := range gb.Params {
		p, err := buildParam(pb)
		if err != nil {
			return nil, err
		}
		if err := g.Add(pb.Name, p); err != nil {
			return nil, err
		}
	}
	for _, sub := range gb.Groups {
		child, err := buildGroup(sub)
		if err != nil {
			return nil, err
		}
		if err := g.Add(sub.Name, child); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func buildParam(pb *paramBlock) (*ami.Param, error) {
	usage, err := ami.ParseUsage(pb.Usage)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", pb.Name, err)
	}
	typ, err := ami.ParseType(pb.Type)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", pb.Name, err)
	}
	format := ami.FormatValue
	if pb.Format != nil {
		format, err = ami.ParseFormat(*pb.Format)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pb.Name, err)
		}
	}

	values, err := valueList(pb.Values)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", pb.Name, err)
	}

	return ami.NewParam(ami.Param{
		Name:        pb.Name,
		Usage:       usage,
		Type:        typ,
		Format:      format,
		Default:     valOf(pb.Default),
		Min:         valOf(pb.Min),
		Max:         valOf(pb.Max),
		Values:      values,
		Labels:      pb.Labels,
		Description: strOf(pb.Description),
	})
}

func valueList(v *cty.Value) ([]cty.Value, error) {
	if v == nil || v.IsNull() {
		return nil, nil
	}
	if !v.CanIterateElements() {
		return nil, fmt.Errorf("values must be a list, got %s", v.Type().FriendlyName())
	}
	var out []cty.Value
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		out = append(out, ev)
	}
	return out, nil
}

func valOf(v *cty.Value) cty.Value {
	if v == nil {
		return cty.NilVal
	}
	return *v
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
