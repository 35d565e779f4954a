package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/middleware"
	"github.com/AnshRaj112/portfolio-admin/internal/services"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsPongWait   = 90 * time.Second
	wsPingPeriod = 30 * time.Second
	wsWriteWait  = 10 * time.Second
)

var revalidationUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced at the HTTP layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RevalidationWebSocket streams every invalidated page path to the admin UI
// so open previews can refresh. Browsers cannot set headers on websocket
// requests, so the session token may also come as ?token=.
func RevalidationWebSocket(w http.ResponseWriter, r *http.Request) {
	if revalidations == nil {
		writeFail(w, http.StatusServiceUnavailable, "revalidation feed disabled")
		return
	}

	token := middleware.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		writeFail(w, http.StatusUnauthorized, "missing session token")
		return
	}
	admin, err := adminAuth.Authenticate(r.Context(), token)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logger.Error("session lookup failed", zap.Error(err))
			writeFail(w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
		writeFail(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	conn, err := revalidationUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := revalidations.Subscribe()
	defer unsubscribe()
	logger.Info("revalidation feed opened", zap.String("admin", admin.Username))

	// Reader: only control frames are expected; a read error means the
	// client went away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(1024)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
