package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/spacedrep"
)

// DefaultHistoryLimit is used when RecentSessions is called without a limit.
const DefaultHistoryLimit = 20

var sessionColumns = []string{
	"id", "user_id", "source", "topic_id", "mode", "item_count",
	"correct", "incorrect", "duration_seconds", "time_up", "started_at", "ended_at",
}

// ProgressRepo implements progress.Service and progress.History on SQLite.
// Every answer also advances the learner's review schedule for the item.
type ProgressRepo struct {
	s *Store
}

var (
	_ progress.Service = (*ProgressRepo)(nil)
	_ progress.History = (*ProgressRepo)(nil)
)

// StartSession records a new session and returns its id.
func (r *ProgressRepo) StartSession(ctx context.Context, req progress.StartRequest) (string, error) {
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()

	q, args := builder().Insert(tableSessions).
		Columns("id", "sequence", "user_id", "source", "topic_id", "mode", "item_count",
			"time_limit", "correct", "incorrect", "duration_seconds", "time_up", "started_at").
		Values(id, seq, req.UserID, req.Source, req.TopicID, req.Mode, req.ItemCount,
			req.TimeLimit, 0, 0, 0, false, r.s.now().Unix()).
		Query()
	if err := r.s.drv.Exec(ctx, q, args, nil); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// SubmitAnswer records one answer, updates the session tallies and
// reschedules the item for the session's user.
func (r *ProgressRepo) SubmitAnswer(ctx context.Context, sessionID string, a progress.Answer) error {
	// The sequence counter uses its own connection, so take the number
	// before opening the transaction.
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}
	now := r.s.now()

	return r.s.withTx(ctx, func(tx dialect.Tx) error {
		userID, err := sessionUser(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		q, args := builder().Insert(tableAnswers).
			Columns("id", "sequence", "session_id", "item_id", "correct", "answered_at").
			Values(uuid.New().String(), seq, sessionID, a.ItemID, a.Correct, now.Unix()).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("save answer: %w", err)
		}

		tally := "incorrect"
		if a.Correct {
			tally = "correct"
		}
		q, args = builder().Update(tableSessions).
			Add(tally, 1).
			Where(entsql.EQ("id", sessionID)).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("update session tally: %w", err)
		}

		prev, err := reviewState(ctx, tx, userID, a.ItemID)
		if err != nil {
			return err
		}
		next := spacedrep.Record(prev, a.ItemID, a.Correct, now)
		return saveReviewState(ctx, tx, userID, next)
	})
}

// EndSession stamps the session's duration and end time.
func (r *ProgressRepo) EndSession(ctx context.Context, sessionID string, e progress.End) error {
	q, args := builder().Update(tableSessions).
		Set("duration_seconds", e.DurationSeconds).
		Set("time_up", e.TimeUp).
		Set("ended_at", r.s.now().Unix()).
		Where(entsql.EQ("id", sessionID)).
		Query()

	var res sql.Result
	if err := r.s.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("end session %s: %w", sessionID, progress.ErrUnknownSession)
	}
	return nil
}

// RecentSessions lists userID's sessions, newest first.
func (r *ProgressRepo) RecentSessions(ctx context.Context, userID string, limit int) ([]progress.SessionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	q, args := builder().Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence")).
		Limit(limit).
		Query()

	var out []progress.SessionRecord
	err := r.s.query(ctx, q, args, func(rows *entsql.Rows) error {
		var (
			rec       progress.SessionRecord
			startedAt int64
			endedAt   sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Source, &rec.TopicID, &rec.Mode, &rec.ItemCount,
			&rec.Correct, &rec.Incorrect, &rec.DurationSeconds, &rec.TimeUp, &startedAt, &endedAt); err != nil {
			return err
		}
		rec.StartedAt = time.Unix(startedAt, 0).UTC()
		if endedAt.Valid {
			t := time.Unix(endedAt.Int64, 0).UTC()
			rec.EndedAt = &t
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

// ReviewState returns userID's schedule for itemID, or nil when the item
// has never been answered.
func (r *ProgressRepo) ReviewState(ctx context.Context, userID, itemID string) (*spacedrep.ReviewState, error) {
	return reviewState(ctx, r.s.drv, userID, itemID)
}

func sessionUser(ctx context.Context, qr dialect.ExecQuerier, sessionID string) (string, error) {
	q, args := builder().Select("user_id").
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("id", sessionID)).
		Query()

	rows := &entsql.Rows{}
	if err := qr.Query(ctx, q, args, rows); err != nil {
		return "", fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("query session: %w", err)
		}
		return "", fmt.Errorf("session %s: %w", sessionID, progress.ErrUnknownSession)
	}
	var userID string
	if err := rows.Scan(&userID); err != nil {
		return "", fmt.Errorf("scan session: %w", err)
	}
	return userID, nil
}

func scanReviewState(rows *entsql.Rows) (spacedrep.ReviewState, error) {
	var (
		rs         spacedrep.ReviewState
		nextReview int64
		lastReview int64
	)
	if err := rows.Scan(&rs.ItemID, &rs.Stage, &rs.ConsecutiveHits, &rs.Graduated, &nextReview, &lastReview); err != nil {
		return rs, err
	}
	rs.NextReviewDate = time.Unix(nextReview, 0).UTC()
	rs.LastReviewDate = time.Unix(lastReview, 0).UTC()
	return rs, nil
}

func reviewState(ctx context.Context, qr dialect.ExecQuerier, userID, itemID string) (*spacedrep.ReviewState, error) {
	q, args := builder().Select("item_id", "stage", "consecutive_hits", "graduated", "next_review_at", "last_review_at").
		From(entsql.Table(tableReviewStates)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("item_id", itemID),
		)).
		Query()

	rows := &entsql.Rows{}
	if err := qr.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("query review state: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	rs, err := scanReviewState(rows)
	if err != nil {
		return nil, fmt.Errorf("scan review state: %w", err)
	}
	return &rs, nil
}

func saveReviewState(ctx context.Context, ex dialect.ExecQuerier, userID string, rs spacedrep.ReviewState) error {
	q, args := builder().Insert(tableReviewStates).
		Columns("user_id", "item_id", "stage", "consecutive_hits", "graduated", "next_review_at", "last_review_at").
		Values(userID, rs.ItemID, rs.Stage, rs.ConsecutiveHits, rs.Graduated,
			rs.NextReviewDate.Unix(), rs.LastReviewDate.Unix()).
		OnConflict(
			entsql.ConflictColumns("user_id", "item_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := ex.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save review state: %w", err)
	}
	return nil
}
