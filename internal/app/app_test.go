package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorDocText = `
ibis_ver  = 4.1
file_name = "fixture.ibs"

component "A" {
  manufacturer = "Acme Devices"

  package {
    r = 0.1
  }

  pin "1" {
    model = "DRV"
  }
  pin "2" {
    model = "RCV"
  }
}

model "DRV" {
  model_type    = "Output"
  vmeas         = 0.6
  voltage_range = [1.8, 1.62, 1.98]

  ramp {
    rising  = [1.0]
    falling = [1.0]
  }

  pulldown = [
    [0.5, 0.010],
    [0.7, 0.014],
  ]
  pullup = [
    [0.5, 0.010],
    [0.7, 0.014],
  ]
}

model "RCV" {
  model_type    = "Input"
  voltage_range = [1.8]
}
`

const paramDocText = `
group "root" {
  description = "Top level"

  param "enable" {
    usage   = "In"
    type    = "Boolean"
    default = true
  }
}
`

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveDescriptorPath(t *testing.T) {
	dir := t.TempDir()
	docPath := writeDoc(t, dir, "board.ibs.hcl", descriptorDocText)

	t.Run("direct file path", func(t *testing.T) {
		a := NewApp(&bytes.Buffer{}, &Config{DescriptorPath: docPath})
		got, err := a.resolveDescriptorPath()
		require.NoError(t, err)
		assert.Equal(t, docPath, got)
	})

	t.Run("directory search", func(t *testing.T) {
		a := NewApp(&bytes.Buffer{}, &Config{DescriptorPath: dir})
		got, err := a.resolveDescriptorPath()
		require.NoError(t, err)
		assert.Equal(t, docPath, got)
	})

	t.Run("empty directory", func(t *testing.T) {
		a := NewApp(&bytes.Buffer{}, &Config{DescriptorPath: t.TempDir()})
		_, err := a.resolveDescriptorPath()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no descriptor documents")
	})

	t.Run("missing path", func(t *testing.T) {
		a := NewApp(&bytes.Buffer{}, &Config{DescriptorPath: filepath.Join(dir, "absent.ibs.hcl")})
		_, err := a.resolveDescriptorPath()
		assert.Error(t, err)
	})
}

func TestRunReportsInventory(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "board.ibs.hcl", descriptorDocText)

	var out bytes.Buffer
	a := NewApp(&out, &Config{DescriptorPath: dir, Tx: true, LogLevel: "error"})
	require.NoError(t, a.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "fixture.ibs")
	assert.Contains(t, text, "DRV")
	assert.Contains(t, text, "RCV")
}

func TestRunWritesSchemaOutline(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "board.ibs.hcl", descriptorDocText)
	amiPath := writeDoc(t, dir, "driver.ami.hcl", paramDocText)

	var out bytes.Buffer
	a := NewApp(&out, &Config{DescriptorPath: dir, ParamsPath: amiPath, LogLevel: "error"})
	require.NoError(t, a.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[root]: Top level")
	assert.Contains(t, text, "enable (Toggle)")
}

func TestRunRejectsInvalidDescriptor(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "board.ibs.hcl", `file_name = "empty.ibs"`)

	a := NewApp(&bytes.Buffer{}, &Config{DescriptorPath: dir, LogLevel: "error"})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid descriptor")
}
