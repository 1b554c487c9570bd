package notify

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

// FlashCookie carries a notification across a POST/redirect/GET round trip.
const FlashCookie = "studyplan_flash"

// flashMaxAge bounds how long a signed flash stays acceptable.
const flashMaxAge = 5 * 60

// Flashes signs pending notifications so clients cannot forge them.
type Flashes struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewFlashes creates a flash store that signs cookies with hashKey.
func NewFlashes(hashKey []byte, secure bool) *Flashes {
	codec := securecookie.New(hashKey, nil).
		SetSerializer(securecookie.JSONEncoder{}).
		MaxAge(flashMaxAge)
	return &Flashes{codec: codec, secure: secure}
}

// Set stores n so the next rendered page can show it.
func (f *Flashes) Set(w http.ResponseWriter, n Notification) error {
	value, err := f.codec.Encode(FlashCookie, n)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   flashMaxAge,
		Secure:   f.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop reads and clears the pending notification. Tampered or expired
// cookies are dropped.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) (Notification, bool) {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return Notification{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: FlashCookie, Value: "", Path: "/", MaxAge: -1})

	var n Notification
	if err := f.codec.Decode(FlashCookie, c.Value, &n); err != nil {
		return Notification{}, false
	}
	return n, true
}
