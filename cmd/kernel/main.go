// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Yurchenko

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ayurchenko/go-ns-kernel/internal/config"
	"github.com/ayurchenko/go-ns-kernel/internal/install"
	"github.com/ayurchenko/go-ns-kernel/internal/kernel"
	"github.com/ayurchenko/go-ns-kernel/internal/logger"
	"github.com/ayurchenko/go-ns-kernel/internal/remote"
	"github.com/ayurchenko/go-ns-kernel/internal/shell"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "install":
			runInstall()
			return
		case "uninstall":
			runUninstall()
			return
		}
	}

	runKernel()
}

func runInstall() {
	log := logger.NewLogger("ns-kernel-install")

	installer, err := install.NewInstaller("", log)
	if err != nil {
		log.Fatal().Err(err).Msg("create installer")
	}

	dir, err := installer.Install()
	if err != nil {
		log.Fatal().Err(err).Msg("install kernelspec")
	}

	fmt.Printf("> kernelspec installed to %s\n", dir)
}

func runUninstall() {
	log := logger.NewLogger("ns-kernel-uninstall")

	installer, err := install.NewInstaller("", log)
	if err != nil {
		log.Fatal().Err(err).Msg("create installer")
	}

	if err := installer.Uninstall(); err != nil {
		if errors.Is(err, install.ErrNotInstalled) {
			fmt.Println("> kernelspec is not installed")
			return
		}
		log.Fatal().Err(err).Msg("uninstall kernelspec")
	}

	fmt.Println("> kernelspec uninstalled")
}

func runKernel() {
	log := logger.NewKernelLogger("ns-kernel")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	engine, err := shell.NewGoEngine(log)
	if err != nil {
		log.Fatal().Err(err).Msg("create execution engine")
	}

	opts := remote.DefaultOptions()
	opts.SyncRequestTimeout = cfg.Session.SyncRequestTimeout

	svc := kernel.NewModuleService(nil, log)
	client := kernel.NewClient(svc, endpointResolver(cfg), opts, log)

	ctx := context.Background()
	session, err := shell.NewSession(ctx, engine, client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("start synchronized session")
	}

	repl(ctx, session, log)
}

// endpointResolver prefers an explicitly named configuration file and falls
// back to the saved-else-default resolution in the per-user config dir.
func endpointResolver(cfg *config.StructuredConfig) config.EndpointResolver {
	if cfg.JSONFilePath == "" {
		return config.ResolveEndpoint
	}
	return func() (config.Endpoint, error) {
		loaded, err := config.Load(cfg.JSONFilePath)
		if err != nil {
			return config.Endpoint{}, err
		}
		return config.Endpoint{
			Host: loaded.Registry.Host,
			Port: loaded.Registry.NamespacePort,
		}, nil
	}
}

// repl reads units of work line by line from stdin until EOF, shutting the
// session down afterwards.
func repl(ctx context.Context, session *shell.Session, log *logger.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Print("> ")
	for scanner.Scan() {
		code := scanner.Text()
		if code != "" {
			result, err := session.Execute(ctx, code)
			switch {
			case err != nil:
				fmt.Printf("error: %v\n", err)
			case result != nil:
				fmt.Printf("%v\n", result)
			}
		}
		fmt.Print("> ")
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}

	fmt.Println()
	if err := session.Shutdown(false); err != nil {
		log.Error().Err(err).Msg("session shutdown")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}
