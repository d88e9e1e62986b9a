package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/iwvelando/investment-form/internal/fields"
)

// clientMessage is an event sent by the browser over the live channel.
type clientMessage struct {
	Type      string `json:"type"` // "change", "focus", "blur" or "state"
	RequestID string `json:"requestId,omitempty"`
	Field     string `json:"field,omitempty"`
	Value     any    `json:"value,omitempty"`
}

// serverMessage answers a clientMessage.
type serverMessage struct {
	Type      string           `json:"type"` // "patch", "state" or "error"
	RequestID string           `json:"requestId,omitempty"`
	Session   *sessionResponse `json:"session,omitempty"`
	Error     string           `json:"error,omitempty"`
}

var errSessionGone = errors.New("session expired or submitted")

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	fs, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Warn("websocket accept failed",
			zap.String("op", "server.handleWebSocket"),
			zap.Error(err),
		)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(s.maxBody)

	s.logger.Info("websocket connected",
		zap.String("op", "server.handleWebSocket"),
		zap.String("session", fs.id),
	)

	ctx := r.Context()
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled) {
				s.logger.Info("websocket disconnected",
					zap.String("op", "server.handleWebSocket"),
					zap.String("session", fs.id),
				)
				return
			}
			s.logger.Warn("websocket read failed",
				zap.String("op", "server.handleWebSocket"),
				zap.String("session", fs.id),
				zap.Error(err),
			)
			return
		}

		reply, gone := s.dispatch(fs, msg)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			s.logger.Warn("websocket write failed",
				zap.String("op", "server.handleWebSocket"),
				zap.String("session", fs.id),
				zap.Error(err),
			)
			return
		}
		if gone {
			conn.Close(websocket.StatusPolicyViolation, reply.Error)
			return
		}
	}
}

// dispatch applies one event. gone reports that the session no longer
// exists and the connection should be closed.
func (s *Server) dispatch(fs *formSession, msg clientMessage) (reply serverMessage, gone bool) {
	if _, ok := s.sessions.get(fs.id); !ok {
		return serverMessage{Type: "error", RequestID: msg.RequestID, Error: errSessionGone.Error()}, true
	}
	return s.apply(fs, msg), false
}

// apply handles one event under the session lock.
func (s *Server) apply(fs *formSession, msg clientMessage) serverMessage {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	s.sessions.touch(fs)

	fail := func(err error) serverMessage {
		return serverMessage{Type: "error", RequestID: msg.RequestID, Error: err.Error()}
	}
	reply := func(kind string, patch fields.Patch, warnings []string) serverMessage {
		snap := s.snapshot(fs, patch, warnings)
		return serverMessage{Type: kind, RequestID: msg.RequestID, Session: &snap}
	}

	switch msg.Type {
	case "change":
		patch, warnings, err := s.applyChange(fs, fieldRequest{Field: msg.Field, Value: msg.Value})
		if err != nil {
			return fail(err)
		}
		return reply("patch", patch, warnings)
	case "focus":
		if err := fs.form.Focus(msg.Field); err != nil {
			return fail(err)
		}
		return reply("state", nil, nil)
	case "blur":
		return reply("patch", fs.form.Blur(), nil)
	case "state":
		return reply("state", nil, nil)
	default:
		return fail(fmt.Errorf("unknown message type: %q", msg.Type))
	}
}
