package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidex-labs/caseview-cli/internal/core/domain"
)

func TestNewStore_RequiresBaseURL(t *testing.T) {
	_, err := NewStore(Config{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_GetCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/case-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(caseJSON{ID: "case-1", Subject: "Broken widget"})
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	c, err := store.GetCase(context.Background(), "case-1")

	require.NoError(t, err)
	assert.Equal(t, "case-1", c.ID)
	assert.Equal(t, "Broken widget", c.Subject)
	assert.False(t, c.HasParent())
}

func TestStore_GetCase_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = store.GetCase(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_GetCase_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = store.GetCase(context.Background(), "case-1")

	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestStore_ListCases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]caseJSON{{ID: "case-1"}, {ID: "case-2"}})
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	cases, err := store.ListCases(context.Background())

	require.NoError(t, err)
	assert.Len(t, cases, 2)
}

func TestStore_ListImages_PreservesOrderAndLowercasesExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/case-1/attachments", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]imageJSON{
			{ID: "b", Title: "Second", FileExtension: "JPG"},
			{ID: "a", Title: "First", FileExtension: "png"},
		})
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	images, err := store.ListImages(context.Background(), "case-1")

	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "b", images[0].ID)
	assert.Equal(t, "jpg", images[0].FileExtension)
	assert.Equal(t, "a", images[1].ID)
}

func TestStore_SaveCase(t *testing.T) {
	var received caseJSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cases", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	err = store.SaveCase(context.Background(), &domain.Case{ID: "case-1", Subject: "New"})

	require.NoError(t, err)
	assert.Equal(t, "case-1", received.ID)
}

func TestStore_SaveImage(t *testing.T) {
	var received imageJSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/case-1/attachments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store, err := NewStore(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	err = store.SaveImage(context.Background(), "case-1", domain.Image{ID: "img-1", Title: "Shot", FileExtension: "png"})

	require.NoError(t, err)
	assert.Equal(t, "img-1", received.ID)
}

func TestStore_OAuthTokenRequested(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/cases/case-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(caseJSON{ID: "case-1"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store, err := NewStore(Config{
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/token",
		ClientID:     "client",
		ClientSecret: "secret",
	})
	require.NoError(t, err)

	_, err = store.GetCase(context.Background(), "case-1")

	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}
