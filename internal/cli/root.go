// Package cli implements the xfer command.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/xfer/client"
	"github.com/adamwoolhether/xfer/internal/config"
	"github.com/adamwoolhether/xfer/option"
)

// Version information - set via ldflags during build.
var Version = "dev"

type flags struct {
	configPath  string
	insecure    bool
	headers     []string
	logFile     string
	responseDir string
	opts        []string
	data        []string
	try         bool
	info        bool
	debug       bool
}

// rootCmd represents the base command.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "xfer [flags] URL",
		Short: "Run one configured HTTP transfer",
		Long: `xfer builds a transfer from a YAML config, the environment and flags,
runs it once and prints the response body. Any response other than a 200
is an error unless --try is set.`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0])
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.BoolVar(&f.insecure, "insecure", false, "Skip TLS peer, host and status verification")
	fs.StringArrayVarP(&f.headers, "header", "H", nil, `Request header "Name: value" (repeatable)`)
	fs.StringVar(&f.logFile, "log-file", "", "Append verbose transfer logs to this file")
	fs.StringVar(&f.responseDir, "response-dir", "", "Save the response body into this existing directory")
	fs.StringArrayVarP(&f.opts, "opt", "X", nil, "Transfer option NAME=VALUE, e.g. MAXREDIRS=3 (repeatable)")
	fs.StringArrayVarP(&f.data, "data", "d", nil, "POST form field key=value (repeatable)")
	fs.BoolVar(&f.try, "try", false, "Print the response even when the transfer is unsuccessful")
	fs.BoolVar(&f.info, "info", false, "Print transfer info and options to stderr")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")

	cmd.SetVersionTemplate("xfer {{.Version}}\n")

	return cmd
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, f flags, rawURL string) error {
	level := slog.LevelWarn
	if f.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	overrideFromFlags(cmd, f, &cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	factory, err := client.NewFactory(client.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := factory.Close(); err != nil {
			logger.Error("closing factory", "error", err)
		}
	}()

	if err := configure(factory, cfg, f.opts); err != nil {
		return err
	}

	var h *client.Handle
	if len(f.data) > 0 {
		fields, err := parseFields(f.data)
		if err != nil {
			return err
		}
		h, err = factory.CreatePostHandle(rawURL, fields, nil)
		if err != nil {
			return err
		}
	} else {
		h, err = factory.CreateHandle(rawURL, nil)
		if err != nil {
			return err
		}
	}

	var execOpts []client.ExecOption
	if cfg.ResponseDir != "" {
		execOpts = append(execOpts, client.WithResponseDir(cfg.ResponseDir))
	}

	exec := client.Exec
	if f.try {
		exec = client.Try
	}

	res, err := exec(cmd.Context(), h, execOpts...)
	if res != nil {
		if _, werr := fmt.Fprint(cmd.OutOrStdout(), res.Response()); werr != nil {
			logger.Error("writing response", "error", werr)
		}
		if f.info {
			fmt.Fprintln(cmd.ErrOrStderr(), res.InfoString())
		}
	}

	return err
}

func overrideFromFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("insecure") {
		cfg.Insecure = f.insecure
	}
	if fs.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fs.Changed("response-dir") {
		cfg.ResponseDir = f.responseDir
	}
	cfg.Headers = append(cfg.Headers, f.headers...)
}

// configure applies cfg and the --opt assignments to the factory in a
// fixed order: presets, numeric options, named options, flags, log file.
func configure(factory *client.Factory, cfg config.Config, assignments []string) error {
	if cfg.Insecure {
		if err := factory.Insecure(); err != nil {
			return err
		}
	}

	if len(cfg.Headers) > 0 {
		if err := factory.SetHeaders(cfg.Headers); err != nil {
			return err
		}
	}

	if cfg.Timeout > 0 {
		if err := factory.SetOptions(option.Values{option.TimeoutMS: int(cfg.Timeout / time.Millisecond)}); err != nil {
			return err
		}
	}

	if len(cfg.Options) > 0 {
		if err := factory.Options().UpdateRaw(cfg.Options); err != nil {
			return fmt.Errorf("config options: %w", err)
		}
	}

	reg := factory.Registry()

	named := make(option.Values, len(cfg.NamedOptions))
	for name, v := range cfg.NamedOptions {
		id, err := resolveName(reg, name)
		if err != nil {
			return err
		}
		named[id] = v
	}
	if err := factory.SetOptions(named); err != nil {
		return fmt.Errorf("config named options: %w", err)
	}

	opts, err := parseAssignments(reg, assignments)
	if err != nil {
		return err
	}
	if err := factory.SetOptions(opts); err != nil {
		return fmt.Errorf("--opt: %w", err)
	}

	return factory.LogToFile(cfg.LogFile)
}
