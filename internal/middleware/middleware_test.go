package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/auth"
	"github.com/yigit/studyplan/internal/pkg/session"
)

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "test",
	})
}

type stubRefresher struct {
	pair *auth.TokenPair
	err  error
	used string
}

func (s *stubRefresher) Refresh(_ context.Context, token string) (*auth.TokenPair, error) {
	s.used = token
	return s.pair, s.err
}

func newAuthRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Resolve())
	r.GET("/status", func(c *gin.Context) { c.JSON(http.StatusOK, session.From(c)) })
	r.GET("/api", m.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/page", m.LoginRequired("/login"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestResolveBearerToken(t *testing.T) {
	jwtService := newJWT()
	r := newAuthRouter(NewAuthMiddleware(jwtService, session.Cookies{Name: "sp"}, nil, zerolog.Nop()))

	pair, err := jwtService.GenerateTokenPair(&models.User{ID: 4, Email: "a@b.no"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var state session.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, session.StatusLoggedIn, state.Status)
	assert.EqualValues(t, 4, state.UserID)
}

func TestJWTAuthRejectsAnonymousAndBadTokens(t *testing.T) {
	r := newAuthRouter(NewAuthMiddleware(newJWT(), session.Cookies{Name: "sp"}, nil, zerolog.Nop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer aaa.bbb.ccc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInvalidToken, resp.Error.Code)
}

func TestLoginRequiredRedirects(t *testing.T) {
	r := newAuthRouter(NewAuthMiddleware(newJWT(), session.Cookies{Name: "sp"}, nil, zerolog.Nop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestResolveRefreshesExpiredCookieSession(t *testing.T) {
	jwtService := newJWT()
	fresh, err := jwtService.GenerateTokenPair(&models.User{ID: 9, Email: "c@d.no"})
	require.NoError(t, err)
	refresher := &stubRefresher{pair: fresh}

	r := newAuthRouter(NewAuthMiddleware(jwtService, session.Cookies{Name: "sp"}, refresher, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: "sp", Value: "stale.token.value"})
	req.AddCookie(&http.Cookie{Name: "sp_refresh", Value: "refresh-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "refresh-1", refresher.used)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestResolveClearsCookiesWhenRefreshFails(t *testing.T) {
	refresher := &stubRefresher{err: apperrors.ErrTokenRevoked}
	r := newAuthRouter(NewAuthMiddleware(newJWT(), session.Cookies{Name: "sp"}, refresher, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: "sp_refresh", Value: "revoked"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	for _, ck := range w.Result().Cookies() {
		assert.Equal(t, -1, ck.MaxAge)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("%w: plan belongs to another user", apperrors.ErrPermissionDenied), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrCourseAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrCatalogEntryInUse, http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		status, detail := ErrorStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, detail.Code, tt.err.Error())
	}

	status, detail := ErrorStatus(fmt.Errorf("%w: credits must be between 0 and 120", apperrors.ErrValidationFailed))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "credits must be between 0 and 120", detail.Details)
}

func TestErrorStatusUsesCustomErrorMessage(t *testing.T) {
	status, detail := ErrorStatus(apperrors.NewForbiddenError("plan belongs to another user"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCodeForbidden, detail.Code)
	assert.Equal(t, "Permission denied", detail.Message)
	assert.Equal(t, "plan belongs to another user", detail.Details)

	wrapped := fmt.Errorf("delete season: %w", apperrors.NewInUseError("season 4 is referenced by courses"))
	status, detail = ErrorStatus(wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeConflict, detail.Code)
	assert.Equal(t, "season 4 is referenced by courses", detail.Details)

	_, detail = ErrorStatus(apperrors.ErrCourseNotFound)
	assert.Nil(t, detail.Details)
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		var req dto.LoginRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"a@b.no","password":"p"}`)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "Recovered from panic")
	assert.Contains(t, buf.String(), `"status":500`)
}
