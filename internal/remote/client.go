// Package remote is the HTTP client for a tango server. It implements the
// content store and progress service interfaces so the TUI can run against
// either backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/tango/internal/api"
	"github.com/abhisek/tango/internal/auth"
	"github.com/abhisek/tango/internal/content"
	"github.com/abhisek/tango/internal/progress"
	"github.com/abhisek/tango/internal/telemetry"
	"github.com/abhisek/tango/internal/vocab"
)

// ErrNotFound is returned when the server has no such topic.
var ErrNotFound = errors.New("remote: not found")

// StatusError is a non-2xx reply.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Client talks to a tango server as one user.
type Client struct {
	base   *url.URL
	http   *http.Client
	signer *auth.Signer
	user   string
	tracer trace.Tracer
}

var (
	_ content.Store    = (*Client)(nil)
	_ progress.Service = (*Client)(nil)
	_ progress.History = (*Client)(nil)
)

// New creates a client for the server at baseURL. Requests carry a bearer
// token for user signed with secret.
func New(baseURL, secret, user string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	signer, err := auth.NewSigner(secret)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		signer: signer,
		user:   user,
		tracer: telemetry.Tracer("remote"),
	}, nil
}

// Topics lists the server's topics.
func (c *Client) Topics(ctx context.Context) ([]vocab.Topic, error) {
	var resp api.TopicsResponse
	if err := c.do(ctx, http.MethodGet, api.PathTopics, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Topics, nil
}

// ItemsByTopic fetches one topic's items.
func (c *Client) ItemsByTopic(ctx context.Context, topicID string) ([]vocab.StudyItem, error) {
	var resp api.ItemsResponse
	err := c.do(ctx, http.MethodGet, api.TopicItemsPath(url.PathEscape(topicID)), nil, &resp)
	if isStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("topic %q: %w", topicID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// DueForReview fetches the review queue. The server takes the user from
// the token; userID must match the client's user.
func (c *Client) DueForReview(ctx context.Context, userID string) ([]vocab.StudyItem, error) {
	if userID != "" && userID != c.user {
		return nil, fmt.Errorf("review queue for %q requested by client for %q", userID, c.user)
	}
	var resp api.ItemsResponse
	if err := c.do(ctx, http.MethodGet, api.PathReview, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GenerateTest asks the server for a random test set.
func (c *Client) GenerateTest(ctx context.Context, req content.TestRequest) ([]vocab.StudyItem, error) {
	var resp api.ItemsResponse
	if err := c.do(ctx, http.MethodPost, api.PathTests, req, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// StartSession opens a session on the server.
func (c *Client) StartSession(ctx context.Context, req progress.StartRequest) (string, error) {
	var resp api.StartSessionResponse
	if err := c.do(ctx, http.MethodPost, api.PathSessions, req, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// SubmitAnswer reports one answer.
func (c *Client) SubmitAnswer(ctx context.Context, sessionID string, a progress.Answer) error {
	return sessionErr(sessionID, c.do(ctx, http.MethodPost, api.AnswersPath(url.PathEscape(sessionID)), a, nil))
}

// EndSession reports the end of a session.
func (c *Client) EndSession(ctx context.Context, sessionID string, e progress.End) error {
	return sessionErr(sessionID, c.do(ctx, http.MethodPost, api.EndPath(url.PathEscape(sessionID)), e, nil))
}

// RecentSessions lists the client user's sessions.
func (c *Client) RecentSessions(ctx context.Context, _ string, limit int) ([]progress.SessionRecord, error) {
	path := api.PathSessions
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp api.SessionsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

func sessionErr(sessionID string, err error) error {
	if isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("session %s: %w", sessionID, progress.ErrUnknownSession)
	}
	return err
}

func isStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// do sends one JSON request inside a client span and decodes the reply
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.request.method", method)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	target := *c.base
	target.Path += ref.Path
	target.RawQuery = ref.RawQuery

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	token, err := c.signer.Issue(c.user)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e api.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
