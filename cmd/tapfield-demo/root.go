package main

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/tapfield"
	"github.com/iw2rmb/tapfield/internal/config"
	"github.com/iw2rmb/tapfield/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tapfield-demo",
	Short: "Touch-style text field in the terminal",
	Long: `tapfield-demo hosts a single-line input field the way an on-screen
keyboard would: click to place the cursor or select a word, double and
triple click to select more, drag to move the cursor, and use the popup
for cut, copy, and paste against the system clipboard.`,
	Version:      tapfield.Version(),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/tapfield/config.yaml)")
	f.String("text", "", "initial text")
	f.String("log-level", "", "debug log level (enables logging)")
	f.Bool("watch", true, "reload the config file when it changes")
}

func run(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	v := config.NewViper(cfgFile)
	_ = v.BindPFlag("field.text", cmd.Flags().Lookup("text"))
	_ = v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var log *slog.Logger
	if cfg.Logging.Enabled || cmd.Flags().Changed("log-level") {
		logger, err := logging.NewLogger(cfg.LogDir(), cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer logger.Close()
		log = logger.Logger
	}

	m := newModel(cfg, clipboardHost{log: log}, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if watch, _ := cmd.Flags().GetBool("watch"); watch && v.ConfigFileUsed() != "" {
		config.Watch(v, func(c *config.Config, err error) {
			p.Send(configReloadedMsg{cfg: c, err: err})
		})
	}

	_, err = p.Run()
	return err
}
