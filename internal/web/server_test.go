package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathedit/internal/editor"
	"pathedit/internal/history"
	"pathedit/internal/store"
)

func newTestServer(t *testing.T, initial string) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore(initial)
	h, err := history.New(s)
	require.NoError(t, err)
	ed := editor.New(h,
		editor.WithDelimiter(';'),
		editor.WithValidator(func(v string) bool { return v != "" && !strings.HasPrefix(v, "missing") }),
	)
	srv := httptest.NewServer(NewServer(ed, "memory:PATH", "changes are not persisted (memory store)").Handler())
	t.Cleanup(srv.Close)
	return srv, s
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, State) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var st State
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&st))
	}
	return res.StatusCode, st
}

func values(st State) []string {
	out := make([]string, len(st.Entries))
	for i, e := range st.Entries {
		out[i] = e.Value
	}
	return out
}

func TestState(t *testing.T) {
	srv, _ := newTestServer(t, "A;missing;A;")

	code, st := do(t, srv, http.MethodGet, "/api/entries", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "memory:PATH", st.Store)
	assert.Equal(t, ";", st.Delimiter)
	assert.Equal(t, "A;missing;A;", st.Serialized)
	assert.Equal(t, []string{"A", "missing", "A"}, values(st))
	assert.False(t, st.Entries[1].Valid)
	assert.True(t, st.Entries[2].IsDuplicate)
	assert.False(t, st.CanUndo)
	assert.Contains(t, st.Notice, "not persisted")
}

func TestEditAppendRemove(t *testing.T) {
	srv, s := newTestServer(t, "A;B;")

	code, st := do(t, srv, http.MethodPut, "/api/entries/0", `{"value":"X;Y"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"X", "Y", "B"}, values(st))

	code, st = do(t, srv, http.MethodPost, "/api/entries", `{"value":"C"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"X", "Y", "B", "C"}, values(st))

	code, st = do(t, srv, http.MethodDelete, "/api/entries/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"X", "B", "C"}, values(st))
	assert.True(t, st.CanUndo)

	assert.Equal(t, []string{"X;Y;B;", "X;Y;B;C;", "X;B;C;"}, s.Writes)
}

func TestBadRequests(t *testing.T) {
	srv, s := newTestServer(t, "A;")

	code, _ := do(t, srv, http.MethodPut, "/api/entries/7", `{"value":"X"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodPut, "/api/entries/abc", `{"value":"X"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, srv, http.MethodPut, "/api/entries/0", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, srv, http.MethodPost, "/api/entries", `{"value":""}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, srv, http.MethodDelete, "/api/entries/3", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodPost, "/api/drop", `{"from":5,"after":0}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodPost, "/api/drop", `{"from":0,"after":9}`)
	assert.Equal(t, http.StatusNotFound, code)

	assert.Empty(t, s.Writes)
}

func TestPurgeUndoRedo(t *testing.T) {
	srv, _ := newTestServer(t, "A;missing;B;")

	code, st := do(t, srv, http.MethodPost, "/api/purge", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "B"}, values(st))
	assert.True(t, st.Changed)

	code, st = do(t, srv, http.MethodPost, "/api/undo", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "missing", "B"}, values(st))
	assert.True(t, st.CanRedo)

	code, st = do(t, srv, http.MethodPost, "/api/undo", "")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, st.Changed)

	code, st = do(t, srv, http.MethodPost, "/api/redo", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "B"}, values(st))
}

func TestDrop(t *testing.T) {
	srv, s := newTestServer(t, "A;B;C;")

	code, st := do(t, srv, http.MethodPost, "/api/drop", `{"from":0,"after":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"B", "C", "A"}, values(st))

	code, st = do(t, srv, http.MethodPost, "/api/drop", `{"from":2,"after":-1}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "B", "C"}, values(st))

	code, st = do(t, srv, http.MethodPost, "/api/drop", `{"from":1,"after":1}`)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, st.Changed)

	assert.Len(t, s.Writes, 2)
}

func TestStoreFailure(t *testing.T) {
	srv, s := newTestServer(t, "A;B;")
	s.FailWith = errors.New("read-only")

	code, _ := do(t, srv, http.MethodDelete, "/api/entries/0", "")
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestHelpAndStatic(t *testing.T) {
	srv, _ := newTestServer(t, "A;")

	res, err := srv.Client().Get(srv.URL + "/api/help")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/markdown", res.Header.Get("Content-Type"))

	res2, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.Equal(t, http.StatusOK, res2.StatusCode)
}
