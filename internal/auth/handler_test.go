// File: internal/auth/handler_test.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

func newSignInRouter(t *testing.T, verifier *MockVerifier, users *MockUserService, sessions *MockSessionRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(verifier, users, sessions, zap.NewNop())
	handler := NewHandler(svc, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestSignInEndpoint_InvalidTokenResponds401(t *testing.T) {
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	router := newSignInRouter(t, verifier, users, sessions)

	verifier.On("VerifyIDToken", mock.Anything, "expired-token").
		Return(shared.Identity{}, errors.New("failed to verify Firebase ID token: token expired"))

	body := strings.NewReader(`{"id_token":"expired-token"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UNAUTHORIZED", resp.Code)
}

func TestSignInEndpoint_MissingTokenResponds422(t *testing.T) {
	verifier := new(MockVerifier)
	users := new(MockUserService)
	sessions := new(MockSessionRepository)
	router := newSignInRouter(t, verifier, users, sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	verifier.AssertNotCalled(t, "VerifyIDToken", mock.Anything, mock.Anything)
}
