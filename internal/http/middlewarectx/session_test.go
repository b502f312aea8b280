package middlewarectx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/horseclub-web/internal/session"
)

func TestSessionMiddleware(t *testing.T) {
	store := session.NewStore(time.Minute, newNoopLogger())
	mw := SessionMiddleware(newNoopLogger(), store, "sid", time.Minute)

	var seen *session.Visitor
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := Visitor(r.Context())
		require.True(t, ok)
		seen = v
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	require.NotNil(t, seen)
	assert.Equal(t, seen.ID, cookies[0].Value)
	first := seen

	t.Run("тот же cookie та же сессия", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Same(t, first, seen)
	})

	t.Run("чужой cookie новая сессия", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "forged"})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.NotSame(t, first, seen)
		assert.Equal(t, 2, store.Len())
	})
}

func TestVisitor_Missing(t *testing.T) {
	_, ok := Visitor(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
