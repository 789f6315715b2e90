package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fennwick/projectpilot/internal/config"
	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pilot",
	Short: "Project Pilot - project, task and time tracking",
	Long: `Project Pilot tracks projects, their tasks, and the time logged
against each task, backed by MongoDB.

Run 'pilot' without arguments to launch the interactive TUI;
'pilot serve' starts the web front end.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		// CLI flags win over the config file
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Project Pilot started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		database := db.New(cfg.MongoURI, cfg.Database)
		if err := database.Connect(context.Background()); err != nil {
			logger.Error("Failed to connect to database", logger.F("error", err))
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			_ = database.Close(context.Background())
			logger.Info("Database connection closed")
		}()

		logger.Info("Launching TUI")
		m := tui.NewModel(database)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Project Pilot exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// openDB builds the store from config and connects eagerly so connection
// problems surface before any subcommand work.
func openDB(ctx context.Context) (*db.DB, error) {
	database := db.New(cfg.MongoURI, cfg.Database)
	if err := database.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(logCmd)
}
