package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/pkg/auth"
)

func TestFromDefaultsToLoggedOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.False(t, From(c).IsLoggedIn())
	assert.Equal(t, StatusLoggedOut, From(c).Status)

	Set(c, LoggedIn(3, "x@y.z"))
	assert.True(t, From(c).IsLoggedIn())
	assert.EqualValues(t, 3, From(c).UserID)
}

func TestLoggedInRequiresUser(t *testing.T) {
	assert.False(t, State{Status: StatusLoggedIn}.IsLoggedIn())
}

func TestCookiesRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	k := Cookies{Name: "sp"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	k.Write(c, &auth.TokenPair{AccessToken: "a.b.c", RefreshToken: "r", ExpiresIn: 60, RefreshExpiry: time.Now().Add(time.Hour)})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "sp", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "sp_refresh", cookies[1].Name)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req
	assert.Equal(t, "a.b.c", k.AccessToken(c2))
	assert.Equal(t, "r", k.RefreshToken(c2))
}
