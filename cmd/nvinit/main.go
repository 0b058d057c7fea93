package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	flag "github.com/spf13/pflag"

	"github.com/nvinit-dev/nvinit/internal/bootstrap"
	"github.com/nvinit-dev/nvinit/internal/config"
	"github.com/nvinit-dev/nvinit/internal/doctor"
	"github.com/nvinit-dev/nvinit/internal/env"
	"github.com/nvinit-dev/nvinit/internal/envvar"
	"github.com/nvinit-dev/nvinit/internal/logger"
	"github.com/nvinit-dev/nvinit/internal/luaspec"
	"github.com/nvinit-dev/nvinit/internal/plugin"
	"github.com/nvinit-dev/nvinit/internal/shellenv"
	"github.com/nvinit-dev/nvinit/internal/xfs"
)

const usage = `Usage: nvinit [flags] <command>

Commands:
  bootstrap   Ensure the plugin manager is installed, then converge plugins
              and the shell profile (default)
  sync        Ensure the plugin manager, then install declared plugins
  env         Render the shell login profile to stdout (--write writes it)
  doctor      Check git, nvim, and the plugin manager installation
  watch       Keep converging while the config file changes
`

func main() {
	var (
		flagConfigPath = flag.String("config", "", "Path to config file")
		flagSchemaPath = flag.String("schema", "", "Path to a schema file overriding the embedded one")
		flagDataDir    = flag.String("data-dir", "", "Neovim data directory override")
		flagWrite      = flag.Bool("write", false, "env: write the profile file instead of printing it")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	environment := env.FromEnv()

	logFile := os.Getenv(envvar.NvinitLogFile)
	if logFile == "" {
		logFile = filepath.Join(config.DefaultStatePath(), "logs", "nvinit.log")
	}

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile(logFile),
		),
	)

	configPath := config.ResolveConfigPath(*flagConfigPath)
	cfg, err := config.LoadAndValidate(configPath, *flagSchemaPath)
	if err != nil {
		slog.Error("Failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Config loaded successfully", "config", configPath)

	dataDir := resolveDataDir(cfg, *flagDataDir)
	ctx := context.Background()

	command := flag.Arg(0)
	if command == "" {
		command = "bootstrap"
	}

	switch command {
	case "bootstrap":
		err = converge(ctx, cfg, dataDir, plugin.NewSyncer(dataDir), true)
	case "sync":
		err = converge(ctx, cfg, dataDir, plugin.NewSyncer(dataDir), false)
	case "env":
		err = runEnv(cfg, *flagWrite)
	case "doctor":
		err = runDoctor(ctx, dataDir)
	case "watch":
		err = runWatch(ctx, configPath, *flagSchemaPath, *flagDataDir)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func resolveDataDir(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return xfs.ExpandTilde(flagValue)
	}
	return bootstrap.ResolveDataDir(cfg.Storage.DataDir)
}

// converge makes the declared state true on disk. The bootstrap barrier
// runs first: nothing below it executes unless the plugin manager is
// present. The syncer is passed in so watch mode can keep one across
// reloads and its registry can prune plugins that were un-declared.
// withProfile additionally rewrites the shell profile.
func converge(ctx context.Context, cfg *config.Config, dataDir string, syncer *plugin.Syncer, withProfile bool) error {
	installer := bootstrap.NewInstaller(dataDir)
	if err := installer.EnsurePresent(ctx); err != nil {
		return err
	}

	specs, err := gatherSpecs(cfg)
	if err != nil {
		return err
	}

	entries, err := syncer.Sync(ctx, specs)
	if err != nil {
		return err
	}

	lockPath := filepath.Join(config.DefaultStatePath(), "nvinit.lock.yaml")
	if err := plugin.WriteLockfile(lockPath, entries); err != nil {
		return err
	}
	slog.Info("Plugins synced", "count", len(entries), "lockfile", lockPath)

	if withProfile && cfg.Shell.Profile != "" {
		profile := shellenv.FromConfig(cfg.Shell)
		if err := profile.Write(cfg.Shell.Profile); err != nil {
			return err
		}
		slog.Info("Shell profile written", "path", cfg.Shell.Profile)
	}

	return nil
}

// gatherSpecs merges YAML declarations with Lua spec files; on a name
// collision the YAML declaration wins.
func gatherSpecs(cfg *config.Config) ([]plugin.Spec, error) {
	declared := make([]plugin.Spec, 0, len(cfg.Plugins.Declarations))
	for _, d := range cfg.Plugins.Declarations {
		declared = append(declared, plugin.FromDeclaration(d))
	}

	var fromLua []plugin.Spec
	if cfg.Plugins.SpecsDir != "" {
		var err error
		fromLua, err = luaspec.LoadDir(xfs.ExpandTilde(cfg.Plugins.SpecsDir))
		if err != nil {
			return nil, err
		}
	}

	return plugin.Merge(declared, fromLua), nil
}

func runEnv(cfg *config.Config, write bool) error {
	profile := shellenv.FromConfig(cfg.Shell)

	if write {
		if cfg.Shell.Profile == "" {
			return fmt.Errorf("no shell.profile configured")
		}
		if err := profile.Write(cfg.Shell.Profile); err != nil {
			return err
		}
		slog.Info("Shell profile written", "path", cfg.Shell.Profile)
		return nil
	}

	text, err := profile.Render()
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func runDoctor(ctx context.Context, dataDir string) error {
	checks := doctor.New(dataDir).Run(ctx)

	for _, check := range checks {
		status := "ok"
		if !check.OK {
			status = "fail"
		}
		fmt.Printf("%-4s  %-26s %s\n", status, check.Name, check.Detail)
	}

	if !doctor.Healthy(checks) {
		return fmt.Errorf("some checks failed")
	}
	return nil
}

func runWatch(ctx context.Context, configPath, schemaPath, dataDirFlag string) error {
	// One syncer lives for the whole watch session so its registry carries
	// over between reloads and plugins removed from the config get pruned.
	// It is rebuilt only when the resolved data directory changes.
	var (
		mu        sync.Mutex
		syncer    *plugin.Syncer
		syncerDir string
	)
	syncerFor := func(dataDir string) *plugin.Syncer {
		mu.Lock()
		defer mu.Unlock()
		if syncer == nil || syncerDir != dataDir {
			syncer = plugin.NewSyncer(dataDir)
			syncerDir = dataDir
		}
		return syncer
	}

	watcher, err := config.NewWatcher(configPath, schemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		dataDir := resolveDataDir(cfg, dataDirFlag)
		if err := converge(ctx, cfg, dataDir, syncerFor(dataDir), true); err != nil {
			slog.Error("Failed to converge after reload", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	cfg := watcher.Snapshot()
	dataDir := resolveDataDir(cfg, dataDirFlag)
	if err := converge(ctx, cfg, dataDir, syncerFor(dataDir), true); err != nil {
		return err
	}

	slog.Info("Watching config for changes", "path", configPath)
	select {}
}
