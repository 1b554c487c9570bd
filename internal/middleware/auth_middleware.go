package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/auth"
	"github.com/yigit/studyplan/internal/pkg/session"
)

// TokenRefresher exchanges a refresh token for a new token pair.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

// AuthMiddleware resolves the session of each request
type AuthMiddleware struct {
	jwtService *auth.JWTService
	cookies    session.Cookies
	refresher  TokenRefresher
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, cookies session.Cookies, refresher TokenRefresher, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookies:    cookies,
		refresher:  refresher,
		logger:     logger,
	}
}

// bearerToken finds a token in the Authorization header. Raw tokens and
// quoted values are accepted for Swagger UI.
func bearerToken(c *gin.Context) string {
	header := strings.Trim(c.GetHeader("Authorization"), "\"' ")
	if header == "" {
		return ""
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return ""
	}
	return token
}

// resolve returns the session for the request and the error of a rejected token.
func (m *AuthMiddleware) resolve(c *gin.Context) (session.State, error) {
	if token := bearerToken(c); token != "" {
		claims, err := m.jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			return session.LoggedOut(), err
		}
		return session.LoggedIn(claims.UserID, claims.Email), nil
	}

	token := m.cookies.AccessToken(c)
	if token != "" {
		if claims, err := m.jwtService.ValidateAndExtractClaims(token); err == nil {
			return session.LoggedIn(claims.UserID, claims.Email), nil
		}
	}
	return m.refreshFromCookie(c), nil
}

// refreshFromCookie renews an expired cookie session with the refresh token cookie.
func (m *AuthMiddleware) refreshFromCookie(c *gin.Context) session.State {
	refresh := m.cookies.RefreshToken(c)
	if refresh == "" || m.refresher == nil {
		return session.LoggedOut()
	}

	pair, err := m.refresher.Refresh(c.Request.Context(), refresh)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Cookie session could not be refreshed")
		m.cookies.Clear(c)
		return session.LoggedOut()
	}
	m.cookies.Write(c, pair)

	claims, err := m.jwtService.ValidateAndExtractClaims(pair.AccessToken)
	if err != nil {
		return session.LoggedOut()
	}
	return session.LoggedIn(claims.UserID, claims.Email)
}

// Resolve stores the session of every request. Anonymous requests continue
// as logged out.
func (m *AuthMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := m.resolve(c)
		if err != nil {
			c.Set(tokenErrorKey, err)
		}
		session.Set(c, state)
		c.Next()
	}
}

const tokenErrorKey = "tokenError"

// JWTAuth rejects API requests without a valid session
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.From(c).IsLoggedIn() {
			c.Next()
			return
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Authorization header missing")
		if v, ok := c.Get(tokenErrorKey); ok {
			err, _ := v.(error)
			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Authentication failed").
					WithDetails("Token has expired")
			case errors.Is(err, apperrors.ErrInvalidFormat):
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed").
					WithDetails("Invalid token format")
			default:
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed").
					WithDetails("Invalid token")
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
}

// LoginRequired redirects anonymous page requests to the login page
func (m *AuthMiddleware) LoginRequired(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.From(c).IsLoggedIn() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
