package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/mooring/internal/democonfig"
	"github.com/bft-labs/mooring/internal/readinesswatcher"
	"github.com/bft-labs/mooring/internal/workload"
	"github.com/bft-labs/mooring/pkg/log"
	"github.com/bft-labs/mooring/pkg/mooring"
)

const helpDescription = `
Run a process embedding mooring: a probe server on --port, a simulated
workload that defers shutdown with beacons, and graceful termination on
SIGTERM/SIGINT/SIGHUP.

Point your orchestrator's liveness and readiness probes at /health, /live
and /ready on --port.
`

var exampleUsage = strings.TrimSpace(`
  mooring-demo --port 9000 --grace-period 5s
  mooring-demo --config $HOME/.mooring/config.toml --drain-file /tmp/drain.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// beaconSource adapts *mooring.Mooring to workload.BeaconSource: Mooring's
// CreateBeacon returns the concrete *mooring.Beacon type, which already
// satisfies workload.Beacon, but Go requires the interface method's
// return type to match exactly, so the adapter performs that narrowing.
type beaconSource struct{ m *mooring.Mooring }

func (b beaconSource) CreateBeacon(diag any) (workload.Beacon, error) {
	return b.m.CreateBeacon(diag)
}

func main() {
	cfg := democonfig.DefaultConfig()
	var cfgPath string

	logger := log.NewZerologAdapter()

	root := &cobra.Command{
		Use:     "mooring-demo",
		Short:   "Demonstrate the mooring lifecycle manager",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &cfg, cfgPath, logger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.mooring/config.toml)")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "probe server bind port")
	root.Flags().BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "bind an OS-assigned port instead of --port")
	root.Flags().DurationVar(&cfg.GracePeriod, "grace-period", cfg.GracePeriod, "delay before probes report shutting down")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum time to wait for shutdown before forcing exit")
	root.Flags().StringVar(&cfg.DrainFile, "drain-file", cfg.DrainFile, "TOML file toggling readiness (optional)")
	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of simulated background workers")

	if err := root.Execute(); err != nil {
		logger.Error("mooring-demo failed", log.Err(err))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, cfg *democonfig.Config, cfgPath string, logger log.Logger) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = democonfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && democonfig.FileExists(cfgFile) {
		fc, err := democonfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := democonfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := democonfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("configuration",
		log.Int("port", cfg.Port),
		log.Bool("ephemeral", cfg.Ephemeral),
		log.Duration("gracePeriod", cfg.GracePeriod),
		log.Duration("timeout", cfg.Timeout),
		log.Int("workers", cfg.Workers),
		log.String("drainFile", cfg.DrainFile),
	)

	m, err := mooring.New(mooring.Config{
		Port:        cfg.Port,
		Ephemeral:   cfg.Ephemeral,
		GracePeriod: cfg.GracePeriod,
		Timeout:     cfg.Timeout,
	}, mooring.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create mooring: %w", err)
	}
	logger.Info("probe server listening", log.String("addr", m.Addr()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var watcher *readinesswatcher.Watcher
	if cfg.DrainFile != "" {
		watcher = readinesswatcher.New(cfg.DrainFile, m, logger)
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("start readiness watcher: %w", err)
		}
		defer watcher.Stop()
	}

	sim := workload.New(beaconSource{m: m}, logger, cfg.Workers, 50*time.Millisecond, 500*time.Millisecond)
	if err := sim.Start(ctx); err != nil {
		return fmt.Errorf("start workload: %w", err)
	}

	m.RegisterShutdownHandler(func() error {
		logger.Info("workload draining")
		return sim.Stop(cfg.Timeout)
	})

	m.SignalReady()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, m.Signals()...)

	<-sigCh
	logger.Info("received signal, shutting down")

	<-m.Shutdown()
	logger.Info("shutdown complete")
	return nil
}
