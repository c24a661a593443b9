// Package app wires the descriptor loader, the selection cascade and the
// schema builder into a runnable application with its own logger.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/ibisgo/internal/fsutil"
	"github.com/vk/ibisgo/internal/hcl"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *hcl.Loader
}

// NewApp constructs the application with an isolated logger built from the
// config.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
		config: cfg,
		loader: hcl.NewLoader(),
	}
}

// resolveDescriptorPath turns the configured path into a concrete document
// path, searching directories for descriptor documents.
func (a *App) resolveDescriptorPath() (string, error) {
	info, err := os.Stat(a.config.DescriptorPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return a.config.DescriptorPath, nil
	}

	files, err := fsutil.FindFilesByExtension(a.config.DescriptorPath, ".ibs.hcl")
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no descriptor documents (*.ibs.hcl) found in %s", a.config.DescriptorPath)
	}
	if len(files) > 1 {
		a.logger.Warn("Multiple descriptor documents found, using the first.", "path", files[0], "count", len(files))
	}
	return files[0], nil
}
