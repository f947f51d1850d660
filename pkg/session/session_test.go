package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndGet(t *testing.T) {
	store := NewCookieStore("shopper", &sessions.Options{Path: "/", MaxAge: 3600}, []byte("0123456789abcdef0123456789abcdef"))

	req := httptest.NewRequest(http.MethodGet, "/apps/challenge", nil)
	sess, err := store.Get(req)
	require.NoError(t, err)
	require.True(t, sess.IsNew)
	require.Empty(t, GetString(sess, "customer_id"))

	sess.Values["customer_id"] = "42"
	w := httptest.NewRecorder()
	require.NoError(t, store.Save(req, w, sess))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "shopper", cookies[0].Name)

	next := httptest.NewRequest(http.MethodGet, "/apps/challenge", nil)
	next.AddCookie(cookies[0])
	sess, err = store.Get(next)
	require.NoError(t, err)
	require.False(t, sess.IsNew)
	require.Equal(t, "42", GetString(sess, "customer_id"))
}
