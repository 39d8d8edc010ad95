package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/store"
)

// LoggingProvider records every generation call in the audit log and the
// structured log. Audit failures are logged, never returned.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *logger.Logger
}

// WithLogging wraps a Provider with audit logging. repo and log may be nil.
func WithLogging(p Provider, providerName string, repo store.EventRepo, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, provider: providerName, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		SessionID:   SessionFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	if l.log != nil {
		kv := []any{
			"purpose", data.Purpose,
			"model", data.Model,
			"latency_ms", data.LatencyMs,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens,
		}
		if err != nil {
			l.log.Warn("llm request failed", append(kv, "error", err)...)
		} else {
			l.log.Debug("llm request", kv...)
		}
	}

	if l.repo != nil {
		// The audit write must outlive a cancelled request context.
		auditCtx := context.WithoutCancel(ctx)
		if logErr := l.repo.AppendLLMRequest(auditCtx, data); logErr != nil && l.log != nil {
			l.log.Warn("failed to record llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders a request for the audit log viewer.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
