package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/tui"
)

var version = "dev"

var (
	configPath string
	actionID   string
	language   string
	logLevel   string

	cfg        *config.Config
	needsSetup bool
	logger     *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "quill",
		Short:        "Rewrite, summarize and translate text with AI",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := tui.NewApp(tui.Options{
				Config:     cfg,
				ConfigPath: configPath,
				NeedsSetup: needsSetup,
				Logger:     logger,
			})
			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/quill/config.yaml)")
	root.PersistentFlags().StringVarP(&actionID, "action", "a", "", "rewrite action (see 'quill actions')")
	root.PersistentFlags().StringVarP(&language, "lang", "l", "", "target language for translate")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(runCmd(), actionsCmd(), pingCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return root.ExecuteContext(ctx)
}

// setup loads the config and the logger shared by all commands
func setup() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	needsSetup = !config.Exists(configPath) && cfg.APIKey == ""

	if actionID != "" {
		if _, err := prompts.ParseAction(actionID); err != nil {
			return err
		}
		cfg.DefaultAction = actionID
	}
	if language != "" {
		if !prompts.IsLanguage(language) {
			return fmt.Errorf("unsupported language %q", language)
		}
		cfg.TargetLanguage = prompts.NextLanguage(language, 0)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	path := cfg.LogFile
	if path == "" {
		if path, err = config.DefaultLogPath(); err != nil {
			return err
		}
	}
	logger, err = logging.New(cfg.LogLevel, path)
	if err != nil {
		return err
	}
	logger.Debug("config loaded",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("api_key_from_env", cfg.APIKeyFromEnv()))
	return nil
}
