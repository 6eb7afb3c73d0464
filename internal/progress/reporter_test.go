package progress

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err     error
	answers []Answer
	ends    []End
}

func (f *fakeService) StartSession(context.Context, StartRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "sess-1", nil
}

func (f *fakeService) SubmitAnswer(_ context.Context, _ string, a Answer) error {
	f.answers = append(f.answers, a)
	return f.err
}

func (f *fakeService) EndSession(_ context.Context, _ string, e End) error {
	f.ends = append(f.ends, e)
	return f.err
}

func TestReporterSwallowsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	svc := &fakeService{err: errors.New("connection refused")}
	r := NewReporter(svc, log)

	_, err := r.Start(context.Background(), StartRequest{Source: "topic", Mode: "quiz", ItemCount: 3})
	require.Error(t, err)

	r.Answer(context.Background(), "sess-1", Answer{ItemID: "neko", Correct: true})
	r.End(context.Background(), "sess-1", End{DurationSeconds: 12})

	assert.Len(t, svc.answers, 1, "answer must be attempted exactly once")
	assert.Len(t, svc.ends, 1, "end must be attempted exactly once")
	assert.Contains(t, buf.String(), "answer report dropped")
	assert.Contains(t, buf.String(), "session end report dropped")
}

func TestReporterStart(t *testing.T) {
	r := NewReporter(&fakeService{}, nil)
	id, err := r.Start(context.Background(), StartRequest{Source: "review", Mode: "flashcard", ItemCount: 1})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestSessionRecordAccuracy(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{7, 10, 70},
		{0, 0, 0},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
	}
	for _, tt := range tests {
		r := SessionRecord{Correct: tt.correct, ItemCount: tt.total}
		assert.Equal(t, tt.want, r.Accuracy(), "%d/%d", tt.correct, tt.total)
	}
}
