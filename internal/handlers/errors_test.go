package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker-api/internal/middleware"
	"task-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w: id 7", service.ErrTaskNotFound), http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestRespondError_InternalLogsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := gin.New()
	r.Use(middleware.RequestLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/boom", func(c *gin.Context) { respondError(c, errors.New("disk I/O error")) })

	const id = "4f1d7c1e-2b7a-4f59-9a52-3c0e8b1d6a10"
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk I/O error")
	assert.Contains(t, buf.String(), "request_id="+id)
	assert.Contains(t, buf.String(), "disk I/O error")
}

func TestRegisterOn(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerOn(v))
	require.Error(t, v.Var("   ", "notblank"))
	require.NoError(t, v.Var("text", "notblank"))

	require.Error(t, registerOn(struct{}{}))
}
