package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/spacedrep"
	"github.com/abhisek/tango/internal/vocab"
)

// MaxReviewItems caps the size of a review session.
const MaxReviewItems = 50

var itemColumns = []string{"id", "topic_id", "primary_text", "secondary_text", "meaning", "type"}

// ContentRepo implements content.Store on SQLite.
type ContentRepo struct {
	s *Store
}

var _ content.Store = (*ContentRepo)(nil)

func scanItem(rows *entsql.Rows) (vocab.StudyItem, error) {
	var it vocab.StudyItem
	err := rows.Scan(&it.ID, &it.TopicID, &it.PrimaryText, &it.SecondaryText, &it.Meaning, &it.Type)
	return it, err
}

func (r *ContentRepo) selectItems(ctx context.Context, sel *entsql.Selector) ([]vocab.StudyItem, error) {
	q, args := sel.Query()
	var items []vocab.StudyItem
	err := r.s.query(ctx, q, args, func(rows *entsql.Rows) error {
		it, err := scanItem(rows)
		if err != nil {
			return err
		}
		items = append(items, it)
		return nil
	})
	return items, err
}

// Topics lists topics by name with their item counts.
func (r *ContentRepo) Topics(ctx context.Context) ([]vocab.Topic, error) {
	b := builder()
	// Both sides need aliases up front: LeftJoin would otherwise rename
	// items after its columns were already qualified.
	t := b.Table(tableTopics).As("t")
	i := b.Table(tableItems).As("i")
	q, args := b.Select(t.C("id"), t.C("name"), entsql.As(entsql.Count(i.C("id")), "item_count")).
		From(t).
		LeftJoin(i).On(t.C("id"), i.C("topic_id")).
		GroupBy(t.C("id"), t.C("name")).
		OrderBy(t.C("name"), t.C("id")).
		Query()

	var topics []vocab.Topic
	err := r.s.query(ctx, q, args, func(rows *entsql.Rows) error {
		var tp vocab.Topic
		if err := rows.Scan(&tp.ID, &tp.Name, &tp.ItemCount); err != nil {
			return err
		}
		topics = append(topics, tp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	return topics, nil
}

// ItemsByTopic returns a topic's items in deck order. An unknown topic
// yields ErrNotFound.
func (r *ContentRepo) ItemsByTopic(ctx context.Context, topicID string) ([]vocab.StudyItem, error) {
	ok, err := r.topicExists(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("topic %q: %w", topicID, ErrNotFound)
	}

	items, err := r.selectItems(ctx, builder().Select(itemColumns...).
		From(entsql.Table(tableItems)).
		Where(entsql.EQ("topic_id", topicID)).
		OrderBy("position", "id"))
	if err != nil {
		return nil, fmt.Errorf("query topic items: %w", err)
	}
	return items, nil
}

// DueForReview returns userID's items whose next review date has passed,
// most overdue first.
func (r *ContentRepo) DueForReview(ctx context.Context, userID string) ([]vocab.StudyItem, error) {
	now := r.s.now()
	q, args := builder().Select("item_id", "stage", "consecutive_hits", "graduated", "next_review_at", "last_review_at").
		From(entsql.Table(tableReviewStates)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.LTE("next_review_at", now.Unix()),
		)).
		Query()

	var states []spacedrep.ReviewState
	err := r.s.query(ctx, q, args, func(rows *entsql.Rows) error {
		rs, err := scanReviewState(rows)
		if err != nil {
			return err
		}
		states = append(states, rs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query review states: %w", err)
	}

	ids := spacedrep.DueItems(states, now)
	if len(ids) > MaxReviewItems {
		ids = ids[:MaxReviewItems]
	}
	if len(ids) == 0 {
		return nil, nil
	}

	byID, err := r.itemsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]vocab.StudyItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

// GenerateTest draws req.Count distinct items at random from the requested
// topics, or from every topic when none are named.
func (r *ContentRepo) GenerateTest(ctx context.Context, req content.TestRequest) ([]vocab.StudyItem, error) {
	sel := builder().Select(itemColumns...).From(entsql.Table(tableItems)).OrderBy("id")
	if len(req.TopicIDs) > 0 {
		sel = sel.Where(entsql.In("topic_id", toAny(req.TopicIDs)...))
	}
	items, err := r.selectItems(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query test pool: %w", err)
	}

	r.s.mu.Lock()
	r.s.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	r.s.mu.Unlock()

	if req.Count > 0 && len(items) > req.Count {
		items = items[:req.Count]
	}
	return items, nil
}

// ImportTopic creates or replaces a topic and upserts its items. Item order
// follows the slice. It returns the number of items written.
func (r *ContentRepo) ImportTopic(ctx context.Context, topic vocab.Topic, description string, items []vocab.StudyItem) (int, error) {
	now := r.s.now().Unix()
	err := r.s.withTx(ctx, func(tx dialect.Tx) error {
		q, args := builder().Insert(tableTopics).
			Columns("id", "name", "description", "created_at").
			Values(topic.ID, topic.Name, description, now).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.SetExcluded("name")
					u.SetExcluded("description")
				}),
			).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("upsert topic %s: %w", topic.ID, err)
		}

		for pos, it := range items {
			q, args := builder().Insert(tableItems).
				Columns("id", "topic_id", "primary_text", "secondary_text", "meaning", "type", "position").
				Values(it.ID, topic.ID, it.PrimaryText, it.SecondaryText, it.Meaning, it.Type, pos).
				OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
				Query()
			if err := tx.Exec(ctx, q, args, nil); err != nil {
				return fmt.Errorf("upsert item %s: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *ContentRepo) topicExists(ctx context.Context, topicID string) (bool, error) {
	q, args := builder().Select("id").
		From(entsql.Table(tableTopics)).
		Where(entsql.EQ("id", topicID)).
		Limit(1).
		Query()
	found := false
	err := r.s.query(ctx, q, args, func(rows *entsql.Rows) error {
		found = true
		var id string
		return rows.Scan(&id)
	})
	if err != nil {
		return false, fmt.Errorf("query topic: %w", err)
	}
	return found, nil
}

func (r *ContentRepo) itemsByID(ctx context.Context, ids []string) (map[string]vocab.StudyItem, error) {
	items, err := r.selectItems(ctx, builder().Select(itemColumns...).
		From(entsql.Table(tableItems)).
		Where(entsql.In("id", toAny(ids)...)))
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	byID := make(map[string]vocab.StudyItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return byID, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
