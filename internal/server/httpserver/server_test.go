package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeUsers{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	srv := NewHTTPServer("127.0.0.1:99999", nopLogger{}, &fakeUsers{}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	s := newTestServer(&fakeUsers{})

	a := doJSON(t, s.Handler(), http.MethodGet, "/", "")
	b := doJSON(t, s.Handler(), http.MethodGet, "/", "")

	idA := a.Header().Get(common.RequestIDHeaderName)
	idB := b.Header().Get(common.RequestIDHeaderName)
	assert.Len(t, idA, 16)
	assert.NotEqual(t, idA, idB)
}

func TestRequireSession_StoresClaimsInRequestContext(t *testing.T) {
	want := &auth.Claims{UserID: "u1", Email: "a@example.com"}
	s := newTestServer(&fakeUsers{claims: want})

	var got *auth.Claims
	var ok bool
	s.router.GET("/probe", s.RequireSession(), func(c *gin.Context) {
		got, ok = ClaimsFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: "x"})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestTimeout_SetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestTimeout(50 * time.Millisecond))

	var deadline time.Time
	r.GET("/", func(c *gin.Context) {
		deadline, _ = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	start := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.WithinDuration(t, start.Add(50*time.Millisecond), deadline, 40*time.Millisecond)
}
