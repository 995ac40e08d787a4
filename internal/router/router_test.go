package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collinskipkorir28/surfaypro/config"
	"github.com/collinskipkorir28/surfaypro/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		got = nil
	}
	return rr, got
}

func TestRouter_UnknownRouteReturnsJSON404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(config.Load())

	rr, got := get(t, r, "/api/nope")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, false, got["success"])
	require.Equal(t, "Endpoint not found", got["message"])
}

func TestRouter_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(config.Load())

	rr, got := get(t, r, "/api/health")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "online", got["status"])
	require.NotEmpty(t, got["timestamp"])
	mpesa := got["mpesa"].(map[string]any)
	require.Equal(t, "https://sandbox.safaricom.co.ke", mpesa["apiUrl"])
	require.Equal(t, "174379", mpesa["businessShortCode"])
}

func TestRouter_APIIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(config.Load())

	rr, got := get(t, r, "/api")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "running", got["status"])
	endpoints := got["endpoints"].(map[string]any)
	require.Equal(t, "POST /api/mpesa/stkpush", endpoints["stkPush"])
	require.Equal(t, "POST /api/mpesa/callback", endpoints["callback"])
}

func TestRouter_RequestIDHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Setup(config.Load())

	rr, _ := get(t, r, "/api/health")
	require.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	rr2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")
	r.ServeHTTP(rr2, req)
	require.Equal(t, "fixed-id", rr2.Header().Get(middleware.RequestIDHeader))
}
