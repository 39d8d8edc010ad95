package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "teachteam",
	Short: "AI teaching team in your terminal",
	Long:  "TeachTeam: a Professor, an Academic Advisor, a Research Librarian and a Teaching Assistant that build a learning plan for any topic, plus a tracker for points, badges and progress.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TEACHTEAM_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file loaded before reading configuration")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads the dotenv file if present. Variables already set in the
// environment win.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TEACHTEAM_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// stderrLogger builds the logger used by the non-interactive commands.
func stderrLogger() (*logger.Logger, error) {
	log, err := logger.New(os.Getenv("TEACHTEAM_LOG_MODE"))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}

// fileLogger writes next to the database so the TUI keeps the terminal.
func fileLogger(dbPath string) (*logger.Logger, error) {
	path := filepath.Join(filepath.Dir(dbPath), "teachteam.log")
	log, err := logger.NewFile(path, os.Getenv("TEACHTEAM_LOG_MODE"))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
