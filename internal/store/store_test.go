package store

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/vocab"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// testClock is a settable clock for review scheduling tests.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func openTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{t: testNow}
	s, err := Open(filepath.Join(t.TempDir(), "tango.db"),
		WithClock(clock.Now),
		WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, clock
}

func seedAnimals(t *testing.T, s *Store) []vocab.StudyItem {
	t.Helper()
	items := []vocab.StudyItem{
		{ID: "neko", PrimaryText: "猫", SecondaryText: "neko", Meaning: "cat", Type: "noun"},
		{ID: "inu", PrimaryText: "犬", SecondaryText: "inu", Meaning: "dog", Type: "noun"},
		{ID: "tori", PrimaryText: "鳥", SecondaryText: "tori", Meaning: "bird", Type: "noun"},
	}
	n, err := s.ContentRepo().ImportTopic(context.Background(),
		vocab.Topic{ID: "animals", Name: "Animals"}, "basic animals", items)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	for i := range items {
		items[i].TopicID = "animals"
	}
	return items
}

func TestPragmasApplied(t *testing.T) {
	s, _ := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tango.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.ContentRepo().ImportTopic(context.Background(),
		vocab.Topic{ID: "t", Name: "T"}, "", []vocab.StudyItem{{ID: "a", PrimaryText: "あ"}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	items, err := s.ContentRepo().ItemsByTopic(context.Background(), "t")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSequenceIncreases(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	a, err := s.seq.Next(ctx)
	require.NoError(t, err)
	b, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, a+1, b)
}

func TestTopicsAndItems(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	items := seedAnimals(t, s)
	repo := s.ContentRepo()

	_, err := repo.ImportTopic(ctx, vocab.Topic{ID: "empty", Name: "Empty"}, "", nil)
	require.NoError(t, err)

	topics, err := repo.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []vocab.Topic{
		{ID: "animals", Name: "Animals", ItemCount: 3},
		{ID: "empty", Name: "Empty", ItemCount: 0},
	}, topics)

	got, err := repo.ItemsByTopic(ctx, "animals")
	require.NoError(t, err)
	assert.Equal(t, items, got, "items come back in deck order")

	got, err = repo.ItemsByTopic(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = repo.ItemsByTopic(ctx, "plants")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopicsCountsItemsPerTopic(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	repo := s.ContentRepo()

	topics, err := repo.Topics(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)

	seedAnimals(t, s)
	_, err = repo.ImportTopic(ctx, vocab.Topic{ID: "food", Name: "Food"}, "", []vocab.StudyItem{
		{ID: "sushi", PrimaryText: "寿司", SecondaryText: "sushi", Meaning: "sushi"},
		{ID: "mizu", PrimaryText: "水", SecondaryText: "mizu", Meaning: "water"},
	})
	require.NoError(t, err)
	_, err = repo.ImportTopic(ctx, vocab.Topic{ID: "colors", Name: "Colors"}, "", nil)
	require.NoError(t, err)

	topics, err = repo.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []vocab.Topic{
		{ID: "animals", Name: "Animals", ItemCount: 3},
		{ID: "colors", Name: "Colors", ItemCount: 0},
		{ID: "food", Name: "Food", ItemCount: 2},
	}, topics)
}

func TestImportUpserts(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedAnimals(t, s)
	repo := s.ContentRepo()

	_, err := repo.ImportTopic(ctx, vocab.Topic{ID: "animals", Name: "Animals 2"}, "", []vocab.StudyItem{
		{ID: "neko", PrimaryText: "猫", SecondaryText: "neko", Meaning: "cat (animal)"},
	})
	require.NoError(t, err)

	topics, err := repo.Topics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Animals 2", topics[0].Name)
	assert.Equal(t, 3, topics[0].ItemCount)

	got, err := repo.ItemsByTopic(ctx, "animals")
	require.NoError(t, err)
	assert.Equal(t, "cat (animal)", got[0].Meaning)
}

func TestGenerateTest(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedAnimals(t, s)
	repo := s.ContentRepo()
	_, err := repo.ImportTopic(ctx, vocab.Topic{ID: "food", Name: "Food"}, "", []vocab.StudyItem{
		{ID: "sushi", PrimaryText: "寿司", SecondaryText: "sushi", Meaning: "sushi"},
		{ID: "mizu", PrimaryText: "水", SecondaryText: "mizu", Meaning: "water"},
	})
	require.NoError(t, err)

	got, err := repo.GenerateTest(ctx, content.TestRequest{Count: 4})
	require.NoError(t, err)
	assert.Len(t, got, 4)
	seen := map[string]bool{}
	for _, it := range got {
		assert.False(t, seen[it.ID], "duplicate %s", it.ID)
		seen[it.ID] = true
	}

	got, err = repo.GenerateTest(ctx, content.TestRequest{TopicIDs: []string{"food"}, Count: 10})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, it := range got {
		assert.Equal(t, "food", it.TopicID)
	}
}

func TestProgressLifecycle(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()
	seedAnimals(t, s)
	prog := s.ProgressRepo()

	id, err := prog.StartSession(ctx, progress.StartRequest{
		UserID: "u1", Source: "topic", TopicID: "animals", Mode: "quiz", ItemCount: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, prog.SubmitAnswer(ctx, id, progress.Answer{ItemID: "neko", Correct: true}))
	require.NoError(t, prog.SubmitAnswer(ctx, id, progress.Answer{ItemID: "inu", Correct: false}))
	require.NoError(t, prog.SubmitAnswer(ctx, id, progress.Answer{ItemID: "tori", Correct: true}))

	clock.t = testNow.Add(40 * time.Second)
	require.NoError(t, prog.EndSession(ctx, id, progress.End{DurationSeconds: 40}))

	recs, err := prog.RecentSessions(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, 2, rec.Correct)
	assert.Equal(t, 1, rec.Incorrect)
	assert.Equal(t, 40, rec.DurationSeconds)
	assert.Equal(t, 67, rec.Accuracy())
	assert.Equal(t, testNow, rec.StartedAt)
	require.NotNil(t, rec.EndedAt)
	assert.Equal(t, clock.t, *rec.EndedAt)

	others, err := prog.RecentSessions(ctx, "someone-else", 10)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	prog := s.ProgressRepo()

	var ids []string
	for range 3 {
		id, err := prog.StartSession(ctx, progress.StartRequest{UserID: "u1", Source: "test", Mode: "typing", ItemCount: 1})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recs, err := prog.RecentSessions(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, ids[2], recs[0].ID)
	assert.Equal(t, ids[1], recs[1].ID)
	assert.Nil(t, recs[0].EndedAt)
}

func TestUnknownSession(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedAnimals(t, s)
	prog := s.ProgressRepo()

	err := prog.SubmitAnswer(ctx, "missing", progress.Answer{ItemID: "neko", Correct: true})
	assert.ErrorIs(t, err, progress.ErrUnknownSession)

	err = prog.EndSession(ctx, "missing", progress.End{DurationSeconds: 3})
	assert.ErrorIs(t, err, progress.ErrUnknownSession)
}

func TestReviewQueue(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()
	seedAnimals(t, s)
	prog := s.ProgressRepo()
	repo := s.ContentRepo()

	due, err := repo.DueForReview(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, due, "nothing answered, nothing due")

	id, err := prog.StartSession(ctx, progress.StartRequest{UserID: "u1", Source: "topic", Mode: "flashcard", ItemCount: 2})
	require.NoError(t, err)
	require.NoError(t, prog.SubmitAnswer(ctx, id, progress.Answer{ItemID: "neko", Correct: true}))
	require.NoError(t, prog.SubmitAnswer(ctx, id, progress.Answer{ItemID: "inu", Correct: false}))

	rs, err := prog.ReviewState(ctx, "u1", "neko")
	require.NoError(t, err)
	require.NotNil(t, rs)
	assert.Equal(t, 1, rs.Stage)
	assert.Equal(t, testNow.AddDate(0, 0, 3), rs.NextReviewDate)

	rs, err = prog.ReviewState(ctx, "u1", "tori")
	require.NoError(t, err)
	assert.Nil(t, rs)

	// A missed item is due the next day; a hit waits three days.
	clock.t = testNow.AddDate(0, 0, 1)
	due, err = repo.DueForReview(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "inu", due[0].ID)

	clock.t = testNow.AddDate(0, 0, 5)
	due, err = repo.DueForReview(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "inu", due[0].ID, "most overdue first")
	assert.Equal(t, "neko", due[1].ID)

	due, err = repo.DueForReview(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, due, "review state is per user")
}

func TestWithPragmas(t *testing.T) {
	assert.Equal(t,
		"file:/tmp/a.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)",
		withPragmas("/tmp/a.db"))
	assert.Contains(t, withPragmas("file:a.db?mode=rwc"), "file:a.db?mode=rwc&_pragma=")
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TANGO_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tango", "tango.db"), p)
	assert.DirExists(t, filepath.Join(dir, "tango"))

	custom := filepath.Join(dir, "custom", "x.db")
	t.Setenv("TANGO_DB", custom)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, custom, p)
}
