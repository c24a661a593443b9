package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/ibisgo/internal/ami"
	"github.com/vk/ibisgo/internal/ctxlog"
	"github.com/vk/ibisgo/internal/descriptor"
	"github.com/vk/ibisgo/internal/selection"
)

// Run loads the descriptor, reports its inventory, bootstraps the selection
// cascade, resolves the executable pair for the host platform, and, when a
// parameter-definition document was given, prints its config schema.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	path, err := a.resolveDescriptorPath()
	if err != nil {
		return err
	}

	mapping, diagText, err := a.loader.LoadDescriptor(ctx, path)
	if err != nil {
		return err
	}
	if diagText != "" {
		a.logger.Debug("Parser diagnostics.", "text", diagText)
	}

	desc, err := descriptor.New(mapping, diagText)
	if err != nil {
		return fmt.Errorf("invalid descriptor %s: %w", path, err)
	}
	fmt.Fprintln(a.outW, desc.Info())

	sel, err := selection.New(desc, a.config.Tx)
	if err != nil {
		return err
	}
	a.logger.Info("Selection bootstrapped.",
		"component", sel.ComponentName(),
		"pin", sel.PinName(),
		"model", sel.ModelName(),
		"tx", a.config.Tx,
	)

	a.reportExecutables(sel)

	if a.config.ParamsPath != "" {
		root, err := a.loader.LoadParams(ctx, a.config.ParamsPath)
		if err != nil {
			return err
		}
		schema := ami.BuildSchema(root)
		a.writeSchema(schema, 0)
	}

	return nil
}

// reportExecutables resolves the selected model's executable pair for the
// host platform. A table with entries but no platform match gets a warning;
// a model without a table stays silent, per the fail-soft contract.
func (a *App) reportExecutables(sel *selection.State) {
	m := sel.Model()
	if m == nil {
		return
	}
	host := descriptor.HostPlatform()
	pair, ok := sel.Executables(host)
	switch {
	case ok:
		fmt.Fprintf(a.outW, "Algorithmic model:\n  library:    %s\n  parameters: %s\n", pair.Library, pair.ParamFile)
	case !m.Execs().Empty():
		a.logger.Warn("No algorithmic-model executable matches this platform; falling back to the analytic model.",
			"model", m.Name, "os", host.OS.String(), "bits", host.Bits)
	}
}

// writeSchema prints a schema section as an indented outline.
func (a *App) writeSchema(sec ami.Section, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(a.outW, "%s[%s]", indent, sec.Label)
	if sec.Description != "" {
		fmt.Fprintf(a.outW, ": %s", sec.Description)
	}
	fmt.Fprintln(a.outW)
	for _, f := range sec.Fields {
		fmt.Fprintf(a.outW, "%s  %s (%s)\n", indent, f.Name, f.Kind)
	}
	for _, sub := range sec.Sections {
		a.writeSchema(sub, depth+1)
	}
}
