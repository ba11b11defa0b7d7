package api

import (
	"context"
	"net/http"
	"time"

	"AvkuWeb/internal/domain/models"
	"AvkuWeb/internal/usecase"
	xhttp "AvkuWeb/pkg/http"
	xlogger "AvkuWeb/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamHandler pushes jar balances over a WebSocket.
type StreamHandler struct {
	logger   *xlogger.Logger
	lookup   *usecase.JarLookup
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, lookup *usecase.JarLookup, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StreamHandler{
		logger:   logger,
		lookup:   lookup,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is public; CORS is open as well.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/monobank-jar/stream", h.Stream)
}

type streamError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Stream sends the jar right away and then on every tick until the client goes away.
func (h *StreamHandler) Stream(c echo.Context) error {
	req := &models.StreamRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  msgMissingSendID,
			"fields": verr,
		})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go h.readPump(conn, cancel)

	h.logger.Debug("jar stream opened",
		xlogger.String("send_id", req.SendID),
		xlogger.String("source", req.Source),
	)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := h.push(ctx, conn, req); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.push(ctx, conn, req); err != nil {
				return nil
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// push writes one jar or error frame. A non-nil result means the connection is gone.
func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, req *models.StreamRequest) error {
	var frame interface{}
	jar, err := h.lookup.Resolve(ctx, req.Source, req.SendID)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		appErr := jarError(err)
		frame = streamError{Error: appErr.Message, Details: appErr.Details}
	} else {
		frame = jar
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(frame)
}

// readPump drains client frames so control messages are processed and a close is noticed.
func (h *StreamHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
