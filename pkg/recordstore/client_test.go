package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/records/widgets/w-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testRecord{ID: "w-1", Name: "anvil"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	var got testRecord
	err := client.Get(context.Background(), "widgets", "w-1", &got)
	require.NoError(t, err)
	assert.Equal(t, "anvil", got.Name)
}

func TestClient_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	var got testRecord
	err := client.Get(context.Background(), "widgets", "missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Insert_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	err := client.Insert(context.Background(), "widgets", "w-1", testRecord{ID: "w-1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClient_ServerError_IsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	err := client.Update(context.Background(), "widgets", "w-1", testRecord{ID: "w-1"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_List_Filter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/records/widgets", r.URL.Path)
		assert.Equal(t, "anvil", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]testRecord{{ID: "w-1", Name: "anvil"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	var got []testRecord
	filter := url.Values{"name": []string{"anvil"}}
	err := client.List(context.Background(), "widgets", filter, &got)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "w-1", got[0].ID)
}

func TestClient_ConnectionRefused_IsUnavailable(t *testing.T) {
	// Point at a closed port.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-token")

	var got testRecord
	err := client.Get(context.Background(), "widgets", "w-1", &got)
	assert.ErrorIs(t, err, ErrUnavailable)
}
