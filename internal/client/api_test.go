package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mandalart/internal/auth"
	"mandalart/internal/mandalart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, r *http.Request) string {
	t.Helper()
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func TestAPIClient_ListDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/mandalart", r.URL.Path)
		assert.Equal(t, "2026", r.URL.Query().Get("year"))
		assert.Equal(t, "session-1", sessionCookie(t, r))

		json.NewEncoder(w).Encode([]mandalart.DocumentResponse{
			{ID: "doc-1", Year: "2026", Title: "Goals", Cells: mandalart.NewEmptyCells()},
		})
	}))
	defer server.Close()

	api := NewAPIClient(server.URL, "session-1")
	documents, err := api.ListDocuments(context.Background(), "2026")
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "doc-1", documents[0].ID)
	assert.Len(t, documents[0].Cells, mandalart.TotalCells)
}

func TestAPIClient_SaveDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/mandalart", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "doc-1", body["id"])
		assert.Equal(t, "2026", body["year"])

		json.NewEncoder(w).Encode(map[string]string{"id": "doc-1"})
	}))
	defer server.Close()

	doc := mandalart.NewDocument()
	doc.Year = "2026"

	api := NewAPIClient(server.URL, "session-1")
	id, err := api.SaveDocument(context.Background(), "doc-1", doc)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
}

func TestAPIClient_SaveDocument_OmitsEmptyID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, present := body["id"]
		assert.False(t, present)

		json.NewEncoder(w).Encode(map[string]string{"id": "fresh-id"})
	}))
	defer server.Close()

	api := NewAPIClient(server.URL, "session-1")
	id, err := api.SaveDocument(context.Background(), "", mandalart.NewDocument())
	require.NoError(t, err)
	assert.Equal(t, "fresh-id", id)
}

func TestAPIClient_DeleteDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/mandalart/doc-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	api := NewAPIClient(server.URL, "session-1")
	assert.NoError(t, api.DeleteDocument(context.Background(), "doc-1"))
}

func TestAPIClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Session expired or not found"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	api := NewAPIClient(server.URL, "stale")

	_, err := api.ListDocuments(context.Background(), "")
	assert.ErrorContains(t, err, "status=401")

	_, err = api.SaveDocument(context.Background(), "", mandalart.NewDocument())
	assert.ErrorContains(t, err, "status=401")

	assert.ErrorContains(t, api.DeleteDocument(context.Background(), "x"), "status=401")
}
