package root

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stormquest/internal/config"
	"stormquest/internal/logger"
	"stormquest/internal/ui"
)

const Version = "0.1.0"

// app carries the resolved configuration and logger into subcommands.
type app struct {
	cfg config.Config
	log *logger.Logger
	now func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	if a.log == nil {
		a.log = logger.Nop()
	}

	rootCmd := &cobra.Command{
		Use:           "sq",
		Short:         "Stormquest: a weather-themed summer assignment planner",
		Long:          "Stormquest spreads a fixed backlog of school assignments across the summer, mixes in daily activities, and tracks XP, levels and streaks.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			log, err := logger.New(a.cfg.LogMode, a.cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.log = log.With("store", a.cfg.Store)
			return nil
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.cfg.Store, "store", a.cfg.Store, "storage engine: sqlite or json ($"+config.EnvStore+")")
	f.StringVar(&a.cfg.DataPath, "data", a.cfg.DataPath, "data file path ($"+config.EnvData+")")
	f.StringVar(&a.cfg.CatalogPath, "catalog", a.cfg.CatalogPath, "catalog YAML override ($"+config.EnvCatalog+")")
	f.StringVar(&a.cfg.LogMode, "log-mode", a.cfg.LogMode, "log format: dev or prod ($"+config.EnvLogMode+")")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level ($"+config.EnvLogLevel+")")

	rootCmd.AddCommand(
		newDayCmd(a),
		newDoCmd(a),
		newCheckCmd(a),
		newEasyCmd(a),
		newStatusCmd(a),
		newSubjectsCmd(a),
		newPlanCmd(a),
		newHistoryCmd(a),
		newBoardCmd(a),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd(&app{cfg: config.FromEnv()}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
