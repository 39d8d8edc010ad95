package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/app"
	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/search"
	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/store"
)

// runApp opens the store, builds the team, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	log, err := fileLogger(dbPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	team, err := newTeam(ctx, st.EventRepo(), log)
	if err != nil {
		return err
	}

	exportDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve export dir: %w", err)
	}

	return app.Run(app.Options{
		Team:      team,
		Session:   session.New(badges.DefaultRules()),
		ExportDir: exportDir,
	})
}

// newTeam builds the generation provider and the search tool. Either one
// being misconfigured is fatal.
func newTeam(ctx context.Context, repo store.EventRepo, log *logger.Logger) (*agents.Team, error) {
	provider, err := llm.NewProviderFromEnv(ctx, repo, log)
	if err != nil {
		var missing *llm.ErrMissingCredential
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Set OPENAI_API_KEY (or another provider key), or TEACHTEAM_LLM_PROVIDER=mock to try it offline.")
		}
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	searchCfg := search.ConfigFromEnv()
	tool, err := search.New(searchCfg)
	if err != nil {
		return nil, fmt.Errorf("create search tool: %w", err)
	}
	log.Debug("team ready", "model", provider.ModelID(), "search", searchCfg.Resolved())
	return agents.NewTeam(provider, tool, log), nil
}
