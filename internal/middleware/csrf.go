package middleware

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/yigit/studyplan/internal/pkg/logger"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "gorilla.csrf.Token"

// CSRF protects the HTML form posts. Safe methods pass through and get a
// token for the forms they render.
func CSRF(key []byte, secure bool) gin.HandlerFunc {
	failure := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event := logger.Warn().Str("path", r.URL.Path)
		if reason := csrf.FailureReason(r); reason != nil {
			event = event.Str("reason", reason.Error())
		}
		event.Msg("CSRF check failed")
		http.Error(w, "Forbidden - invalid form token", http.StatusForbidden)
	})

	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(failure),
	)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})

		r := c.Request
		if !secure {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protect(next).ServeHTTP(c.Writer, r)
		if !passed {
			c.Abort()
		}
	}
}

// CSRFField returns the hidden input for the current request's forms.
func CSRFField(c *gin.Context) template.HTML {
	return csrf.TemplateField(c.Request)
}
