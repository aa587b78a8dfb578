package server

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoweb/internal/storage"
)

func TestSignupValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		form        url.Values
		wantMessage string
	}{
		{
			name:        "missing fields",
			form:        url.Values{"username": {"alice"}},
			wantMessage: "All fields are required",
		},
		{
			name: "password mismatch",
			form: url.Values{
				"username":         {"alice"},
				"password":         {"secret1"},
				"confirm_password": {"secret2"},
			},
			wantMessage: "Passwords do not match",
		},
		{
			name: "short password",
			form: url.Values{
				"username":         {"alice"},
				"password":         {"abc"},
				"confirm_password": {"abc"},
			},
			wantMessage: "Password must be at least 6 characters long",
		},
		{
			name: "short username",
			form: url.Values{
				"username":         {"al"},
				"password":         {"secret1"},
				"confirm_password": {"secret1"},
			},
			wantMessage: "Username must be at least 3 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := newTestServer(t)

			w := doPostForm(srv, "/auth/signup", tt.form, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMessage)

			// No user record was created.
			if username := tt.form.Get("username"); username != "" {
				_, err := store.GetUserByUsername(context.Background(), username)
				assert.ErrorIs(t, err, storage.ErrUserNotFound)
			}
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	srv, _ := newTestServer(t)
	signup(t, srv, "alice", "secret1")

	w := doPostForm(srv, "/auth/signup", url.Values{
		"username":         {"alice"},
		"password":         {"another1"},
		"confirm_password": {"another1"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}

func TestSignupStoresOnlyHashedPassword(t *testing.T) {
	srv, store := newTestServer(t)
	signup(t, srv, "alice", "secret1")

	user, err := store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "secret1")
}

func TestLoginSuccess(t *testing.T) {
	srv, _ := newTestServer(t)
	signup(t, srv, "alice", "secret1")

	w := doPostForm(srv, "/auth/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))

	var found bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie && ck.Value != "" {
			found = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found, "login must set the session cookie")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv, _ := newTestServer(t)
	signup(t, srv, "alice", "secret1")

	unknownUser := doPostForm(srv, "/auth/login", url.Values{
		"username": {"mallory"},
		"password": {"secret1"},
	}, nil)
	wrongPassword := doPostForm(srv, "/auth/login", url.Values{
		"username": {"alice"},
		"password": {"wrongpass"},
	}, nil)

	assert.Equal(t, http.StatusOK, unknownUser.Code)
	assert.Equal(t, http.StatusOK, wrongPassword.Code)
	assert.Contains(t, unknownUser.Body.String(), "Invalid username or password")
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
}

func TestLogoutDestroysSession(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := signup(t, srv, "alice", "secret1")

	w := doGet(srv, "/auth/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	// The old cookie no longer grants access.
	w = doGet(srv, "/todos", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestGuardRedirectsAnonymousUsers(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGet(srv, "/todos", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestGuardKeepsAuthedUsersOffLoginPages(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := signup(t, srv, "alice", "secret1")

	for _, path := range []string{"/auth/login", "/auth/signup"} {
		w := doGet(srv, path, cookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/todos", w.Header().Get("Location"))
	}
}

func TestRootRedirects(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doGet(srv, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	cookie := signup(t, srv, "alice", "secret1")
	w = doGet(srv, "/", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
}
