package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"portcheck/internal/logger"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsReadLimit    = 4096
)

var checkUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

func (s *Server) handleCheckWS(w http.ResponseWriter, r *http.Request) {
	conn, err := checkUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveCheckConnection(r, conn)
}

// serveCheckConnection answers one check per incoming message, in order.
func (s *Server) serveCheckConnection(r *http.Request, conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	l := logger.WithComponent("server")
	ctx := r.Context()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		var req checkRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if writeWSPayload(conn, errorResponse{Error: "invalid request: " + err.Error()}) != nil {
				return
			}
			continue
		}

		result, err := s.runCheck(ctx, req)
		var payload any = result
		if err != nil {
			payload = errorResponse{Error: err.Error()}
		}
		if err := writeWSPayload(conn, payload); err != nil {
			return
		}
	}
}

func writeWSPayload(conn *websocket.Conn, payload any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(payload)
}
