// Package rest provides an AttachmentStore backed by a remote record API
// over HTTP. Authentication uses the OAuth2 client-credentials flow when
// credentials are configured; otherwise requests are unauthenticated.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AttachmentStore = (*Store)(nil)

// Config holds the connection settings for the remote record API.
type Config struct {
	// BaseURL is the API root, e.g. "https://records.example.com/api".
	BaseURL string

	// TokenURL is the OAuth2 token endpoint. Empty disables authentication.
	TokenURL string

	// ClientID and ClientSecret are the client-credentials pair.
	ClientID     string
	ClientSecret string

	// Timeout bounds each request. Zero selects a 30 second default.
	Timeout time.Duration
}

// Store talks to the remote record API.
type Store struct {
	base   string
	client *http.Client
}

// NewStore creates a REST attachment store from the given configuration.
func NewStore(cfg Config) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rest store: %w: base URL required", domain.ErrInvalidInput)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client = cc.Client(context.Background())
		client.Timeout = timeout
	}

	return &Store{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		client: client,
	}, nil
}

// caseJSON is the wire representation of a case.
type caseJSON struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// imageJSON is the wire representation of an image attachment.
type imageJSON struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FileExtension string `json:"fileExtension"`
	DataURL       string `json:"dataUrl,omitempty"`
}

func (c caseJSON) toDomain() domain.Case {
	out := domain.Case{ID: c.ID, Subject: c.Subject, CreatedAt: c.CreatedAt}
	if c.ParentID != nil && *c.ParentID != "" {
		out.ParentID = c.ParentID
	}
	return out
}

// GetCase retrieves a case by ID.
func (s *Store) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	var wire caseJSON
	if err := s.getJSON(ctx, "/cases/"+url.PathEscape(id), &wire); err != nil {
		return nil, err
	}
	c := wire.toDomain()
	return &c, nil
}

// ListCases returns all cases known to the remote API.
func (s *Store) ListCases(ctx context.Context) ([]domain.Case, error) {
	var wire []caseJSON
	if err := s.getJSON(ctx, "/cases", &wire); err != nil {
		return nil, err
	}
	cases := make([]domain.Case, 0, len(wire))
	for _, c := range wire {
		cases = append(cases, c.toDomain())
	}
	return cases, nil
}

// ListImages returns a case's image attachments in the API's order.
func (s *Store) ListImages(ctx context.Context, caseID string) ([]domain.Image, error) {
	var wire []imageJSON
	if err := s.getJSON(ctx, "/cases/"+url.PathEscape(caseID)+"/attachments", &wire); err != nil {
		return nil, err
	}
	images := make([]domain.Image, 0, len(wire))
	for _, img := range wire {
		images = append(images, domain.Image{
			ID:            img.ID,
			Title:         img.Title,
			FileExtension: strings.ToLower(img.FileExtension),
			DataURL:       img.DataURL,
		})
	}
	return images, nil
}

// SaveCase stores or updates a case on the remote API.
func (s *Store) SaveCase(ctx context.Context, c *domain.Case) error {
	wire := caseJSON{ID: c.ID, Subject: c.Subject, ParentID: c.ParentID, CreatedAt: c.CreatedAt}
	return s.postJSON(ctx, "/cases", wire)
}

// SaveImage stores an image attachment on the remote API.
func (s *Store) SaveImage(ctx context.Context, caseID string, img domain.Image) error {
	wire := imageJSON{ID: img.ID, Title: img.Title, FileExtension: img.FileExtension, DataURL: img.DataURL}
	return s.postJSON(ctx, "/cases/"+url.PathEscape(caseID)+"/attachments", wire)
}

func (s *Store) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("requesting %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting %s: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("posting %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
