package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"todoweb/internal/storage/boltdb"
	"todoweb/internal/storage/sqlite"
)

func newTestServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	store, err := sqlite.Open(filepath.Join(dir, "todo.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sessions, err := boltdb.Open(filepath.Join(dir, "sessions.db"), []byte("test-secret"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	return New(store, store, sessions, logger), store
}

func doGet(srv *Server, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func doPostForm(srv *Server, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func doPostJSON(srv *Server, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

// signup registers a user and returns the issued session cookie.
func signup(t *testing.T, srv *Server, username, password string) *http.Cookie {
	t.Helper()
	w := doPostForm(srv, "/auth/signup", url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/todos", w.Header().Get("Location"))

	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("session cookie not set on signup")
	return nil
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decodeAPIResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
