package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	g := gin.New()
	RegisterHealth(g, time.Now())

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())
}

func TestReady(t *testing.T) {
	ok := Dependency{Name: "redis", Check: func(context.Context) error { return nil }}
	down := Dependency{Name: "audit", Check: func(context.Context) error { return errors.New("no mongo") }}

	g := gin.New()
	RegisterHealth(g, time.Now(), ok)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	g = gin.New()
	RegisterHealth(g, time.Now(), ok, down)
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string          `json:"status"`
		Deps   map[string]bool `json:"deps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "not_ready", body.Status)
	require.Equal(t, map[string]bool{"store": true, "redis": true, "audit": false}, body.Deps)
}

func TestFallbacks(t *testing.T) {
	g := gin.New()
	RegisterFallbacks(g)
	g.GET("/tickets", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"Not Found"}`, w.Body.String())

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("DELETE", "/tickets", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.JSONEq(t, `{"detail":"Method Not Allowed"}`, w.Body.String())
}
