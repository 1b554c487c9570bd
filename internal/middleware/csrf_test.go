package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRF([]byte("0123456789abcdef0123456789abcdef"), false))
	r.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, csrf.Token(c.Request))
	})
	r.POST("/form", func(c *gin.Context) {
		c.String(http.StatusOK, "saved")
	})
	return r
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	r := newCSRFRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "saved")
}

func TestCSRFAcceptsIssuedToken(t *testing.T) {
	r := newCSRFRouter()

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, get.Code)
	token := get.Body.String()
	require.NotEmpty(t, token)

	form := url.Values{CSRFFieldName: {token}, "name": {"x"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range get.Result().Cookies() {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "saved", w.Body.String())
}
