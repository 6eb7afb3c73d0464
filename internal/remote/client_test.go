package remote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/auth"
	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/server"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/vocab"
)

const testSecret = "testsecrettestsecrettestsecrettestsecret"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tango.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.ContentRepo().ImportTopic(context.Background(),
		vocab.Topic{ID: "colors", Name: "Colors"}, "", []vocab.StudyItem{
			{ID: "aka", PrimaryText: "赤", SecondaryText: "aka", Meaning: "red"},
			{ID: "ao", PrimaryText: "青", SecondaryText: "ao", Meaning: "blue"},
			{ID: "kiiro", PrimaryText: "黄色", SecondaryText: "kiiro", Meaning: "yellow"},
		})
	require.NoError(t, err)

	signer, err := auth.NewSigner(testSecret)
	require.NoError(t, err)
	prog := st.ProgressRepo()
	srv := httptest.NewServer(server.NewRouter(server.Deps{
		Content:  st.ContentRepo(),
		Progress: prog,
		History:  prog,
		Signer:   signer,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", testSecret, "hana", 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("localhost:8080", testSecret, "hana", 0)
	assert.Error(t, err)

	_, err = New("http://localhost:8080", "short", "hana", 0)
	assert.ErrorIs(t, err, auth.ErrShortSecret)
}

func TestContent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	topics, err := c.Topics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "colors", topics[0].ID)
	assert.Equal(t, 3, topics[0].ItemCount)

	items, err := c.ItemsByTopic(ctx, "colors")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "aka", items[0].ID)

	_, err = c.ItemsByTopic(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	test, err := c.GenerateTest(ctx, content.TestRequest{Count: 2})
	require.NoError(t, err)
	assert.Len(t, test, 2)

	due, err := c.DueForReview(ctx, "hana")
	require.NoError(t, err)
	assert.Empty(t, due)

	_, err = c.DueForReview(ctx, "someone-else")
	assert.Error(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	id, err := c.StartSession(ctx, progress.StartRequest{
		Source: "topic", TopicID: "colors", Mode: "flashcard", ItemCount: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, c.SubmitAnswer(ctx, id, progress.Answer{ItemID: "aka", Correct: true}))
	require.NoError(t, c.SubmitAnswer(ctx, id, progress.Answer{ItemID: "ao", Correct: false}))
	require.NoError(t, c.EndSession(ctx, id, progress.End{DurationSeconds: 42}))

	recs, err := c.RecentSessions(ctx, "hana", 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
	assert.Equal(t, "hana", recs[0].UserID)
	assert.Equal(t, 1, recs[0].Correct)
	assert.Equal(t, 1, recs[0].Incorrect)
	assert.Equal(t, 42, recs[0].DurationSeconds)
	assert.NotNil(t, recs[0].EndedAt)
}

func TestUnknownSession(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	err := c.SubmitAnswer(ctx, "missing", progress.Answer{ItemID: "aka", Correct: true})
	assert.ErrorIs(t, err, progress.ErrUnknownSession)

	err = c.EndSession(ctx, "missing", progress.End{})
	assert.ErrorIs(t, err, progress.ErrUnknownSession)
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.StartSession(context.Background(), progress.StartRequest{Source: "bogus", Mode: "flashcard", ItemCount: 1})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.NotEmpty(t, se.Message)
}

func TestForwardsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"topics":[]}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, testSecret, "hana", time.Second)
	require.NoError(t, err)
	_, err = c.Topics(context.Background())
	require.NoError(t, err)

	signer, err := auth.NewSigner(testSecret)
	require.NoError(t, err)
	require.Greater(t, len(got), len("Bearer "))
	user, err := signer.Verify(got[len("Bearer "):])
	require.NoError(t, err)
	assert.Equal(t, "hana", user)
}
