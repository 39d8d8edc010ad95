package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/server"
)

const defaultSessionTTL = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the learning session API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = envOr("TEACHTEAM_ADDR", ":8080")
		}

		ttl := defaultSessionTTL
		if v := os.Getenv("TEACHTEAM_SESSION_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid TEACHTEAM_SESSION_TTL %q: %w", v, err)
			}
			ttl = d
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log, err := stderrLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		team, err := newTeam(ctx, st.EventRepo(), log)
		if err != nil {
			return err
		}

		rules := badges.DefaultRules()
		sessions, err := openSessionStore(ctx, ttl, rules, log)
		if err != nil {
			return err
		}
		defer sessions.Close()

		srv := server.New(server.Config{
			Addr:         addr,
			AllowOrigins: splitList(os.Getenv("TEACHTEAM_CORS_ORIGINS")),
			Rules:        rules,
		}, team, sessions, log)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides TEACHTEAM_ADDR, default :8080)")
}

// openSessionStore picks Redis when TEACHTEAM_REDIS_ADDR is set. The memory
// store is swept in the background until ctx ends.
func openSessionStore(ctx context.Context, ttl time.Duration, rules badges.Rules, log *logger.Logger) (server.Store, error) {
	if addr := os.Getenv("TEACHTEAM_REDIS_ADDR"); addr != "" {
		rs, err := server.NewRedisStore(ctx, addr, ttl, rules)
		if err != nil {
			return nil, fmt.Errorf("connect session store: %w", err)
		}
		log.Info("session store", "backend", "redis", "addr", addr, "ttl", ttl)
		return rs, nil
	}

	ms := server.NewMemoryStore(ttl)
	log.Info("session store", "backend", "memory", "ttl", ttl)
	if ttl > 0 {
		go sweep(ctx, ms, ttl, log)
	}
	return ms, nil
}

func sweep(ctx context.Context, ms *server.MemoryStore, ttl time.Duration, log *logger.Logger) {
	interval := min(ttl, 10*time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ms.Sweep(); n > 0 {
				log.Debug("expired sessions removed", "count", n, "live", ms.Len())
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
