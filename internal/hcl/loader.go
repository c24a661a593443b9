package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/ibisgo/internal/ctxlog"
)

// Loader reads descriptor and parameter-definition documents in their HCL
// interchange form.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// decodeFile parses one HCL file and decodes its body into target. Returned
// diagnostics contain only warnings; errors abort.
func (l *Loader) decodeFile(ctx context.Context, path string, target any) (hcl.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing document.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	decodeDiags := gohcl.DecodeBody(file.Body, nil, target)
	diags = append(diags, decodeDiags...)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	return diags, nil
}

// warningText renders non-fatal diagnostics as the accumulated text the
// descriptor retains verbatim.
func warningText(diags hcl.Diagnostics) string {
	var lines []string
	for _, d := range diags {
		if d.Severity == hcl.DiagWarning {
			lines = append(lines, d.Error())
		}
	}
	return strings.Join(lines, "\n")
}
