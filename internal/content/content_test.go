package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/vocab"
)

type fakeStore struct {
	topicID string
	userID  string
	testReq *TestRequest
	err     error
	items   []vocab.StudyItem
}

func (f *fakeStore) Topics(context.Context) ([]vocab.Topic, error) { return nil, f.err }

func (f *fakeStore) ItemsByTopic(_ context.Context, topicID string) ([]vocab.StudyItem, error) {
	f.topicID = topicID
	return f.items, f.err
}

func (f *fakeStore) DueForReview(_ context.Context, userID string) ([]vocab.StudyItem, error) {
	f.userID = userID
	return f.items, f.err
}

func (f *fakeStore) GenerateTest(_ context.Context, req TestRequest) ([]vocab.StudyItem, error) {
	f.testReq = &req
	return f.items, f.err
}

func TestFetchDispatchesBySource(t *testing.T) {
	items := []vocab.StudyItem{{ID: "a"}}
	ctx := context.Background()

	t.Run("topic", func(t *testing.T) {
		f := &fakeStore{items: items}
		got, err := Fetch(ctx, f, session.Config{Source: session.SourceTopic, TopicID: "animals"}, "u1")
		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Equal(t, "animals", f.topicID)
	})

	t.Run("review", func(t *testing.T) {
		f := &fakeStore{items: items}
		_, err := Fetch(ctx, f, session.Config{Source: session.SourceReview}, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", f.userID)
	})

	t.Run("test defaults count", func(t *testing.T) {
		f := &fakeStore{items: items}
		_, err := Fetch(ctx, f, session.Config{Source: session.SourceTest, TopicIDs: []string{"a", "b"}}, "u1")
		require.NoError(t, err)
		require.NotNil(t, f.testReq)
		assert.Equal(t, DefaultTestCount, f.testReq.Count)
		assert.Equal(t, []string{"a", "b"}, f.testReq.TopicIDs)
	})

	t.Run("test explicit count", func(t *testing.T) {
		f := &fakeStore{items: items}
		_, err := Fetch(ctx, f, session.Config{Source: session.SourceTest, Count: 5}, "u1")
		require.NoError(t, err)
		assert.Equal(t, 5, f.testReq.Count)
	})
}

func TestFetchErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Fetch(ctx, &fakeStore{}, session.Config{Source: "lesson"}, "u1")
	assert.ErrorIs(t, err, ErrUnknownSource)

	_, err = Fetch(ctx, &fakeStore{}, session.Config{Source: session.SourceTopic}, "u1")
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = Fetch(ctx, &fakeStore{err: boom}, session.Config{Source: session.SourceReview}, "u1")
	assert.ErrorIs(t, err, boom)
}
