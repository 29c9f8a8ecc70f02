package airtable_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/infrastructure/airtable"
)

func TestFetchAll_SigueElOffset(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appBase/tblTable", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		w.Header().Set("Content-Type", "application/json")
		switch offset {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1"}, {"id": "rec2"}},
				"offset":  "itr2",
			})
		case "itr2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec3"}},
			})
		default:
			t.Errorf("offset inesperado %q", offset)
		}
	}))
	defer srv.Close()

	c := airtable.NewClient(srv.URL+"/", "tok", "appBase", "tblTable")
	records, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"", "itr2"}, offsets)
	assert.JSONEq(t, `{"id":"rec3"}`, string(records[2]))
}

func TestFetchAll_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := airtable.NewClient(srv.URL, "bad", "app", "tbl")
	_, err := c.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchAll_TablaVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer srv.Close()

	records, err := airtable.NewClient(srv.URL, "tok", "app", "tbl").FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}
