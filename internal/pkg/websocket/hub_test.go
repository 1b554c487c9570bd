package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"go.uber.org/goleak"
)

type programmeLookup map[int64]*models.Programme

func (p programmeLookup) GetByID(_ context.Context, id int64) (*models.Programme, error) {
	if prog, ok := p[id]; ok {
		return prog, nil
	}
	return nil, apperrors.ErrProgrammeNotFound
}

func startHub(t *testing.T) (*Hub, *httptest.Server, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	r := gin.New()
	h := NewHandler(hub, programmeLookup{1: {ID: 1}}, "", zerolog.Nop())
	r.GET("/programmes/:id/ws", h.HandleConnection)
	srv := httptest.NewServer(r)

	return hub, srv, func() {
		cancel()
		<-stopped
		srv.Close()
	}
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestHubDeliversProgrammeEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, srv, stop := startHub(t)
	defer stop()

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL(srv, "/programmes/1/ws"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	hub.NotifyChange(2, "courses.changed")
	hub.NotifyChange(1, "courses.changed")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "courses.changed", event.Type)
	assert.EqualValues(t, 1, event.ProgrammeID)

	require.NoError(t, conn.WriteMessage(gorilla.CloseMessage,
		gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubRejectsUnknownProgramme(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, srv, stop := startHub(t)
	defer stop()

	_, resp, err := gorilla.DefaultDialer.Dial(wsURL(srv, "/programmes/7/ws"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	_, resp, err = gorilla.DefaultDialer.Dial(wsURL(srv, "/programmes/abc/ws"), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHubShutdownClosesClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, srv, stop := startHub(t)

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL(srv, "/programmes/1/ws"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount(1))

	// Events after shutdown are dropped without blocking.
	hub.NotifyChange(1, "courses.changed")
}

func TestOriginChecker(t *testing.T) {
	check := originChecker("https://app.example.edu")

	req := httptest.NewRequest(http.MethodGet, "http://api.example.edu/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://app.example.edu")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://api.example.edu")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))
}
