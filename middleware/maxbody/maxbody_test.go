package maxbody

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_RejectsDeclaredOversize(t *testing.T) {
	called := false
	h := New(4).Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))

	assert.False(t, called)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandler_LimitsUndeclaredBody(t *testing.T) {
	var readErr error
	h := New(4).Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long"))
	r.ContentLength = -1
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.Error(t, readErr)
	var mbe *http.MaxBytesError
	assert.True(t, errors.As(readErr, &mbe))
}

func TestHandler_PassesSmallBody(t *testing.T) {
	var got string
	h := New(64).Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	assert.Equal(t, "ok", got)
}
