package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/pkg/auth"
)

// Cookies writes and reads the auth cookies used by the HTML pages.
// The access token lives in Name, the refresh token in Name+"_refresh".
type Cookies struct {
	Name   string
	Secure bool
}

func (k Cookies) refreshName() string {
	return k.Name + "_refresh"
}

// Write stores both tokens of pair.
func (k Cookies) Write(c *gin.Context, pair *auth.TokenPair) {
	k.set(c, k.Name, pair.AccessToken, int(pair.ExpiresIn))
	k.set(c, k.refreshName(), pair.RefreshToken, int(time.Until(pair.RefreshExpiry).Seconds()))
}

// Clear removes both cookies.
func (k Cookies) Clear(c *gin.Context) {
	k.set(c, k.Name, "", -1)
	k.set(c, k.refreshName(), "", -1)
}

// AccessToken returns the access token cookie, if any.
func (k Cookies) AccessToken(c *gin.Context) string {
	v, _ := c.Cookie(k.Name)
	return v
}

// RefreshToken returns the refresh token cookie, if any.
func (k Cookies) RefreshToken(c *gin.Context) string {
	v, _ := c.Cookie(k.refreshName())
	return v
}

func (k Cookies) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", k.Secure, true)
}
