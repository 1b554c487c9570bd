package websocket

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/middleware"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/helpers"
	"github.com/yigit/studyplan/internal/pkg/session"
)

// ProgrammeLookup checks that a programme exists before subscribing to it.
type ProgrammeLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Programme, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub        *Hub
	programmes ProgrammeLookup
	upgrader   websocket.Upgrader
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler. Only same-host origins and
// allowedOrigin (when set) may connect.
func NewHandler(hub *Hub, programmes ProgrammeLookup, allowedOrigin string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		programmes: programmes,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigin),
		},
		logger: logger,
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if allowed != "" && origin == allowed {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// HandleConnection godoc
// @Summary Subscribe to programme changes
// @Description Upgrades to a WebSocket that receives an event whenever courses, catalog or the programme change, so the client can refetch
// @Tags programmes, websocket
// @Param id path int true "Programme ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id}/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	programmeID, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid programme id"))
		return
	}
	if _, err := h.programmes.GetByID(c.Request.Context(), programmeID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Int64("programmeID", programmeID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:         h.hub,
		conn:        conn,
		send:        make(chan []byte, 16),
		userID:      session.From(c).UserID,
		programmeID: programmeID,
		logger:      h.logger,
	}
	if !h.hub.enqueueRegister(client) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
