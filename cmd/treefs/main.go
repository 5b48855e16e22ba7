package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/brettbedarf/treefs/config"
	"github.com/brettbedarf/treefs/filesystem"
	"github.com/brettbedarf/treefs/internal/mount"
	"github.com/brettbedarf/treefs/internal/shell"
	"github.com/brettbedarf/treefs/internal/util"
)

func main() {
	// Parse command line arguments
	var (
		verbose    int
		configPath string
		rootName   string
		mnt        string
		umount     bool
	)
	flag.IntVar(&verbose, "verbose", config.InfoVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&rootName, "root", "", "Name of the root directory")
	flag.StringVar(&rootName, "r", "", "--root (shorthand)")
	flag.StringVar(&mnt, "mount", "", "Mount the tree read-only at this directory instead of starting the shell")
	flag.StringVar(&mnt, "m", "", "--mount (shorthand)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the mount directory first if needed. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <descriptor>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	verboseSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "v" || f.Name == "verbose" {
			verboseSet = true
		}
	})

	// Load config; the verbosity flag wins over the file only when given
	cfg := config.NewDefaultConfig()
	var cfgErr error
	if configPath != "" {
		if fileCfg, err := config.NewConfigFromFile(configPath); err != nil {
			cfgErr = err
		} else {
			cfg = fileCfg
		}
	}
	if verboseSet || configPath == "" {
		cfg.LogLvl = config.VerboseToLogLevel(verbose)
	}

	// Initialize logger
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")
	if cfgErr != nil {
		logger.Fatal().Err(cfgErr).Str("config", configPath).Msg("Failed to load config file")
	}

	descriptorPath := flag.Arg(0)
	logger.Info().
		Int("verbose", verbose).
		Str("config", configPath).
		Str("descriptor", descriptorPath).
		Str("mnt", mnt).
		Msg("treefs initializing")
	if descriptorPath == "" {
		flag.Usage()
		logger.Fatal().Msg("Descriptor not specified; it must be passed as the argument")
	}

	var opts []filesystem.Option
	if rootName != "" {
		opts = append(opts, filesystem.WithRootName(rootName))
	}
	fs, err := filesystem.New(cfg, descriptorPath, opts...)
	if err != nil {
		logger.Fatal().Err(err).Str("descriptor", descriptorPath).Msg("Failed to build filesystem")
	}

	if mnt == "" {
		if err := shell.New(fs, os.Stdin, os.Stdout, os.Stderr).Run(); err != nil {
			logger.Fatal().Err(err).Msg("Shell failed")
		}
		return
	}

	// Try unmount if requested
	if umount {
		cmd := exec.Command("fusermount", "-u", mnt)
		// we ignore error here if not already mounted
		cmd.Run() // nolint:errcheck
	}

	server, err := mount.Mount(mnt, fs.Root(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to mount filesystem")
	}

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	logger.Info().Str("mountpoint", mnt).Msg("Filesystem mounted successfully")

	// Wait for termination signal
	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")

	if err := server.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
	} else {
		logger.Info().Msg("Filesystem unmounted successfully")
	}
}
