// Package content defines the read side of the study data: where session
// items come from.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/vocab"
)

// ErrUnknownSource is returned for a session source no store can serve.
var ErrUnknownSource = errors.New("content: unknown source")

// DefaultTestCount is the size of a generated test when none is requested.
const DefaultTestCount = 20

// TestRequest describes a generated test set. An empty TopicIDs draws from
// every topic.
type TestRequest struct {
	TopicIDs []string `json:"topic_ids"`
	Count    int      `json:"count" validate:"gte=0,lte=500"`
}

// Store serves study items. Implementations are the local SQLite store and
// the HTTP client.
type Store interface {
	Topics(ctx context.Context) ([]vocab.Topic, error)
	ItemsByTopic(ctx context.Context, topicID string) ([]vocab.StudyItem, error)
	DueForReview(ctx context.Context, userID string) ([]vocab.StudyItem, error)
	GenerateTest(ctx context.Context, req TestRequest) ([]vocab.StudyItem, error)
}

// Fetch loads the items for a session configuration from s.
func Fetch(ctx context.Context, s Store, cfg session.Config, userID string) ([]vocab.StudyItem, error) {
	switch cfg.Source {
	case session.SourceTopic:
		if cfg.TopicID == "" {
			return nil, fmt.Errorf("fetch topic items: no topic selected")
		}
		items, err := s.ItemsByTopic(ctx, cfg.TopicID)
		if err != nil {
			return nil, fmt.Errorf("fetch topic %s: %w", cfg.TopicID, err)
		}
		return items, nil
	case session.SourceReview:
		items, err := s.DueForReview(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("fetch review queue: %w", err)
		}
		return items, nil
	case session.SourceTest:
		count := cfg.Count
		if count <= 0 {
			count = DefaultTestCount
		}
		items, err := s.GenerateTest(ctx, TestRequest{TopicIDs: cfg.TopicIDs, Count: count})
		if err != nil {
			return nil, fmt.Errorf("generate test: %w", err)
		}
		return items, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
}
