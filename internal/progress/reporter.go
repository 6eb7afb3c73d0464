package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultReportTimeout bounds each report call.
const DefaultReportTimeout = 5 * time.Second

// Reporter wraps a Service with the best-effort policy: failures are
// logged at warn and swallowed, never retried.
type Reporter struct {
	svc     Service
	log     *slog.Logger
	timeout time.Duration
}

// NewReporter creates a reporter for svc. A nil logger uses the default.
func NewReporter(svc Service, log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{svc: svc, log: log, timeout: DefaultReportTimeout}
}

// Start opens a session. Unlike answer and end reports its error is
// returned, since the caller needs to know a session id is missing.
func (r *Reporter) Start(ctx context.Context, req StartRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.svc.StartSession(ctx, req)
	if err != nil {
		r.log.Warn("session start failed, continuing locally",
			"source", req.Source,
			"mode", req.Mode,
			"error", err)
		return "", fmt.Errorf("start session: %w", err)
	}
	r.log.Debug("session started", "session_id", id, "items", req.ItemCount)
	return id, nil
}

// Answer reports one graded answer.
func (r *Reporter) Answer(ctx context.Context, sessionID string, a Answer) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.svc.SubmitAnswer(ctx, sessionID, a); err != nil {
		r.log.Warn("answer report dropped",
			"session_id", sessionID,
			"item_id", a.ItemID,
			"error", err)
	}
}

// End reports the end of a session.
func (r *Reporter) End(ctx context.Context, sessionID string, e End) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.svc.EndSession(ctx, sessionID, e); err != nil {
		r.log.Warn("session end report dropped",
			"session_id", sessionID,
			"duration_seconds", e.DurationSeconds,
			"error", err)
	}
}
