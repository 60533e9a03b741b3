package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/subtxtpress/brandkit/internal/config"
	"github.com/subtxtpress/brandkit/internal/generator"
	"github.com/subtxtpress/brandkit/internal/logging"
	"github.com/subtxtpress/brandkit/internal/typeface"
	"github.com/subtxtpress/brandkit/internal/version"
	"github.com/subtxtpress/brandkit/internal/watcher"
)

const usage = `usage: brandkit [generate|watch|version] [-config path]

  generate  render icons, favicon and preview once (default)
  watch     generate, then regenerate when the config or a font changes
  version   print build information
`

// invocation is a parsed command line.
type invocation struct {
	cmd        string
	configPath string
}

// parseArgs splits args into a subcommand and its flags. A missing
// subcommand, or one starting with "-", means generate. The config path
// falls back to BK_CONFIG_PATH and then config.DefaultPath.
func parseArgs(args []string, getenv func(string) string) (invocation, error) {
	inv := invocation{cmd: "generate"}
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		inv.cmd, args = args[0], args[1:]
	}
	switch inv.cmd {
	case "generate", "watch", "version", "help":
	default:
		return inv, fmt.Errorf("unknown command %q", inv.cmd)
	}

	fs := flag.NewFlagSet("brandkit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&inv.configPath, "config", "", "path to the YAML config (env BK_CONFIG_PATH)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			inv.cmd = "help"
			return inv, nil
		}
		return inv, err
	}
	if fs.NArg() > 0 {
		return inv, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if inv.configPath == "" {
		inv.configPath = getenv("BK_CONFIG_PATH")
	}
	if inv.configPath == "" {
		inv.configPath = config.DefaultPath
	}
	return inv, nil
}

func main() {
	inv, err := parseArgs(os.Args[1:], os.Getenv)
	if err == nil {
		switch inv.cmd {
		case "generate":
			err = run(inv.configPath, false)
		case "watch":
			err = run(inv.configPath, true)
		case "version":
			fmt.Println("brandkit", version.String())
		case "help":
			fmt.Print(usage)
		}
	} else {
		fmt.Fprint(os.Stderr, usage)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, watch bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logManager, logger := logging.NewManager(cfg.Logging, os.Stderr)
	defer logManager.Close() //nolint:errcheck
	slog.SetDefault(logger)

	logger.Info("starting brandkit",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("config", configPath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fonts := typeface.NewResolver(logger)
	if err := generate(ctx, cfg, fonts, logger); err != nil {
		if !watch {
			return err
		}
		logger.Error("initial generation failed", "error", err)
	}
	if !watch {
		return nil
	}

	rebuild := func(ctx context.Context) error {
		next, err := config.Load(configPath)
		if err != nil {
			// Keep serving the last good config.
			return fmt.Errorf("reloading config: %w", err)
		}
		logManager.Reconfigure(next.Logging)
		cfg = next
		fonts.Reset()
		return generate(ctx, cfg, fonts, logger)
	}

	files := append([]string{configPath}, cfg.FontPaths()...)
	opts := watcher.Options{
		Debounce:    cfg.Watch.Debounce,
		MinInterval: cfg.Watch.MinInterval,
	}
	watcher.NewService(rebuild, files, opts, logger, watcher.NewProbeCache()).Start(ctx)

	logger.Info("shutdown complete")
	return nil
}

func generate(ctx context.Context, cfg *config.Config, fonts *typeface.Resolver, logger *slog.Logger) error {
	b, err := cfg.BuildBrand()
	if err != nil {
		return fmt.Errorf("building brand: %w", err)
	}
	gen := generator.New(b, fonts, generator.Options{
		IconsDir:    cfg.Output.IconsDir,
		PreviewPath: cfg.Output.PreviewPath,
	}, logger)

	rep, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	for _, a := range rep.Artifacts {
		fmt.Printf("%-8s %4dx%-4d %s\n", a.Kind, a.Width, a.Height, a.Path)
	}
	return nil
}
