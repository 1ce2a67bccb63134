// ABOUTME: Root cobra command and shared command state
// ABOUTME: Loads configuration and sets up logging before any subcommand runs
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/justinhj/soundexample/internal/config"
	"github.com/justinhj/soundexample/internal/logging"
	"github.com/justinhj/soundexample/internal/version"
	"github.com/justinhj/soundexample/pkg/audio/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	v          *viper.Viper
	cfg        config.Config
	configPath string

	// newOutput creates the audio sink; tests swap in a recording backend
	newOutput func(backend string, volume float64) (output.Output, error)
}

// Run builds the command tree and executes it. SIGINT and SIGTERM cancel
// the command's context, which stops any playback in progress.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand returns the soundexample command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		v:         config.New(),
		newOutput: output.New,
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           version.Product,
		Short:         "Synthesize sine waves and play audio files",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Optional path to a config file (yaml, toml or json)")
	flags.String("backend", "oto", "Audio output backend: oto, malgo or memory")
	flags.Float64("volume", 1.0, "Output volume in [0, 1]")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	root.AddCommand(
		newSineCommand(a),
		newPlayCommand(a),
		newInfoCommand(a),
		newWriteCommand(a),
	)
	return root
}

// setup binds the parsed flags, loads the merged config and configures logging
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	if rate := cmd.Flags().Lookup("rate"); rate != nil {
		if err := a.v.BindPFlag("sample_rate", rate); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func (a *app) output() (output.Output, error) {
	return a.newOutput(a.cfg.Backend, a.cfg.Volume)
}
