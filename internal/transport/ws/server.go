// Package ws delivers realtime hub events over websocket.
package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/auth"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/realtime"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/usecase"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// clientFrame is the only message clients send after the handshake.
type clientFrame struct {
	Action string `json:"action"`
	Board  string `json:"board"`
}

// Server upgrades connections, authenticates them and bridges the hub
// to each socket. Every connection is auto-joined to its user group;
// board groups are joined and left on client frames.
type Server struct {
	log       *zap.SugaredLogger
	hub       *realtime.Hub
	uc        usecase.UserUsecaseInterface
	secret    string
	heartbeat time.Duration
}

// NewServer builds the websocket delivery server.
func NewServer(log *zap.SugaredLogger, hub *realtime.Hub, uc usecase.UserUsecaseInterface, secret string, heartbeat time.Duration) *Server {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Server{
		log:       log.Named("ws"),
		hub:       hub,
		uc:        uc,
		secret:    secret,
		heartbeat: heartbeat,
	}
}

// Handler returns the http handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handle)
	return mux
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
		if token == header {
			token = ""
		}
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := auth.Subject(s.secret, token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	user, err := s.uc.GetUser(r.Context(), userID)
	if err != nil || !user.Active || user.Deleted {
		http.Error(w, "account disabled", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{})
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := s.hub.NewSubscriber()
	defer s.hub.Close(sub)
	s.hub.Join(realtime.UserGroup(user.ID), sub)

	s.log.Infow("client connected", "user_id", user.ID)
	_ = wsjson.Write(ctx, conn, realtime.Event{Name: "ready"})

	readErr := make(chan error, 1)
	go s.readPump(ctx, conn, sub, readErr)

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case <-readErr:
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case <-ticker.C:
			pingCtx, cancelPing := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pingCtx)
			cancelPing()
			if err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "ping_failed")
				return
			}
		case event := <-sub.Events():
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, event)
			cancelWrite()
			if err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return
			}
		}
	}
}

// readPump consumes client frames until the connection drops. Join and
// leave frames mutate the subscriber's board groups; anything else is
// ignored.
func (s *Server) readPump(ctx context.Context, conn *websocket.Conn, sub *realtime.Subscriber, readErr chan<- error) {
	for {
		var frame clientFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			readErr <- err
			return
		}
		if frame.Board == "" {
			continue
		}
		switch frame.Action {
		case "join-board":
			s.hub.Join(realtime.BoardGroup(frame.Board), sub)
		case "leave-board":
			s.hub.Leave(realtime.BoardGroup(frame.Board), sub)
		}
	}
}
