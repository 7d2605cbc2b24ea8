package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/toticourse/backend/internal/models"
)

// completionsResponse is the remote API payload for a fetch
type completionsResponse struct {
	Completions []string `json:"completions"`
}

// recordRequest is the remote API payload for recording one completion
type recordRequest struct {
	LessonID string `json:"lessonId"`
}

type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway backed by the remote learning-records HTTP API
func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration) *httpGateway {
	return &httpGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchCompletions retrieves all completion facts recorded remotely for a user
func (g *httpGateway) FetchCompletions(ctx context.Context, userEmail string) (models.LessonSet, error) {
	endpoint := fmt.Sprintf("%s/users/%s/completions", g.baseURL, url.PathEscape(userEmail))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: err.Error()}
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    KindRejected,
			Message: fmt.Sprintf("fetch completions returned status %d", resp.StatusCode),
		}
	}

	var payload completionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{Kind: KindDecode, Message: err.Error()}
	}

	return models.NewLessonSet(payload.Completions...), nil
}

// RecordCompletion records a single completion fact remotely.
// A conflict response means the fact already exists and is treated as success.
func (g *httpGateway) RecordCompletion(ctx context.Context, userEmail, lessonID string) error {
	endpoint := fmt.Sprintf("%s/users/%s/completions", g.baseURL, url.PathEscape(userEmail))

	body, err := json.Marshal(recordRequest{LessonID: lessonID})
	if err != nil {
		return &Error{Kind: KindDecode, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: err.Error()}
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// 409 means the (user, lesson) fact is already recorded, which satisfies
	// at-least-once semantics
	if resp.StatusCode == http.StatusConflict {
		return nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{
			Kind:    KindRejected,
			Message: fmt.Sprintf("record completion returned status %d", resp.StatusCode),
		}
	}

	return nil
}

func (g *httpGateway) setHeaders(req *http.Request) {
	if g.apiKey != "" {
		req.Header.Set("X-API-Key", g.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}
