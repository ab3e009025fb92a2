// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

// Package install manages the Jupyter kernelspec registration for the
// kernel executable: writing kernel.json into the per-user kernels
// directory and removing it again.
package install

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/models"
)

// KernelID is the kernelspec directory name this kernel registers under.
const KernelID = "ns-kernel"

const kernelSpecFile = "kernel.json"

// ErrNotInstalled is returned by Uninstall when no kernelspec is present.
var ErrNotInstalled = errors.New("kernelspec is not installed")

// Installer writes and removes the kernelspec. The kernels directory is
// injectable for tests; empty means the per-user Jupyter default.
type Installer struct {
	kernelsDir string
	executable string
	log        *logger.Logger
}

// NewInstaller returns an Installer rooted at kernelsDir, or at the
// per-user Jupyter kernels directory when kernelsDir is empty.
func NewInstaller(kernelsDir string, log *logger.Logger) (*Installer, error) {
	if kernelsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		kernelsDir = filepath.Join(home, ".local", "share", "jupyter", "kernels")
	}

	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable path: %w", err)
	}

	return &Installer{
		kernelsDir: kernelsDir,
		executable: executable,
		log:        log.GetChildLogger(),
	}, nil
}

// SpecDir returns the directory the kernelspec lives in.
func (i *Installer) SpecDir() string {
	return filepath.Join(i.kernelsDir, KernelID)
}

// Install writes kernel.json pointing at the current executable,
// overwriting any previous installation. It returns the kernelspec
// directory.
func (i *Installer) Install() (string, error) {
	spec := models.KernelSpec{
		Argv:        []string{i.executable, "-f", "{connection_file}"},
		DisplayName: "NS Kernel",
		Language:    "go",
	}

	dir := i.SpecDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create kernelspec directory: %w", err)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode kernelspec: %w", err)
	}

	path := filepath.Join(dir, kernelSpecFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write kernelspec: %w", err)
	}

	i.log.Info().Str("path", path).Msg("kernelspec installed")
	return dir, nil
}

// Uninstall removes the kernelspec directory. It reports ErrNotInstalled
// when there is nothing to remove.
func (i *Installer) Uninstall() error {
	dir := i.SpecDir()
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotInstalled
		}
		return fmt.Errorf("inspect kernelspec directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove kernelspec directory: %w", err)
	}

	i.log.Info().Str("path", dir).Msg("kernelspec uninstalled")
	return nil
}
