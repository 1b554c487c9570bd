package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	ok := Success("Successfully added course")
	assert.Equal(t, StatusSuccess, ok.Status)
	assert.Equal(t, "Successfully added course", ok.Title)
	assert.True(t, ok.IsClosable)
	assert.EqualValues(t, 5000, ok.DurationMs)
	assert.False(t, ok.IsError())

	bad := Error("Failed to add course")
	assert.True(t, bad.IsError())
}

var testFlashKey = []byte("0123456789abcdef0123456789abcdef")

func TestFlashRoundTrip(t *testing.T) {
	flashes := NewFlashes(testFlashKey, false)
	rec := httptest.NewRecorder()
	require.NoError(t, flashes.Set(rec, Error("Failed to remove course")))

	req := httptest.NewRequest(http.MethodGet, "/programmes/1", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	out := httptest.NewRecorder()
	n, ok := flashes.Pop(out, req)
	require.True(t, ok)
	assert.Equal(t, "Failed to remove course", n.Title)
	assert.True(t, n.IsError())

	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	_, ok := NewFlashes(testFlashKey, false).Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestPopFlashRejectsForgedCookie(t *testing.T) {
	forged, err := json.Marshal(Success("Successfully removed course"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookie, Value: base64.RawURLEncoding.EncodeToString(forged)})
	_, ok := NewFlashes(testFlashKey, false).Pop(httptest.NewRecorder(), req)
	assert.False(t, ok)

	rec := httptest.NewRecorder()
	require.NoError(t, NewFlashes([]byte("another-key-another-key-another-k"), false).Set(rec, Success("x")))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	_, ok = NewFlashes(testFlashKey, false).Pop(httptest.NewRecorder(), req)
	assert.False(t, ok)
}
