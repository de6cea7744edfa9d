package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tournament/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAdmin = &models.Admin{ID: 7, Username: "organizer"}

func TestVerifyAcceptsFreshToken(t *testing.T) {
	m := NewSessionManager("secret", 7*24*time.Hour, false)

	token, err := m.Issue(testAdmin)
	require.NoError(t, err)

	session, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), session.AdminID)
	assert.Equal(t, "organizer", session.Username)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(testAdmin)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	other := NewSessionManager("other-secret", time.Hour, false)
	token, err := other.Issue(testAdmin)
	require.NoError(t, err)

	m := NewSessionManager("secret", time.Hour, false)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, models.ErrUnauthorized, token)
	}
}

func TestRequireSession(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, true)
	token, err := m.Issue(testAdmin)
	require.NoError(t, err)

	var seen *models.Session
	handler := m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("cookie", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "organizer", seen.Username)
	})

	t.Run("bearer header", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("invalid clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestSetCookieAttributes(t *testing.T) {
	m := NewSessionManager("secret", 7*24*time.Hour, true)
	rec := httptest.NewRecorder()
	m.SetCookie(rec, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 7*24*60*60, c.MaxAge)
}
