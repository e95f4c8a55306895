package live

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/reconcile/pkg/htmlx"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

// Encoding selects how a websocket session writes patch replies.
type Encoding string

const (
	EncodingJSON   Encoding = "json"
	EncodingBinary Encoding = "binary"
)

// Session is one client's persistent root.
type Session struct {
	id     string
	root   *reconcile.Root
	logger *slog.Logger
	seq    int
}

// NewSession creates a session with an empty root.
func NewSession(id string, engine *reconcile.Engine, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:     id,
		root:   reconcile.NewRoot(engine),
		logger: logger.With("session", id),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Root returns the session's root.
func (s *Session) Root() *reconcile.Root { return s.root }

// Handle processes one client message and returns the reply.
func (s *Session) Handle(ctx context.Context, msg ClientMessage) ServerMessage {
	switch msg.Type {
	case TypePing:
		return ServerMessage{Type: TypePong, Seq: s.seq}
	case TypeRender:
		return s.render(ctx, msg.HTML)
	default:
		return ServerMessage{Type: TypeError, Error: &ErrorBody{
			Message: fmt.Sprintf("unknown message type %q", msg.Type),
		}}
	}
}

func (s *Session) render(ctx context.Context, doc string) ServerMessage {
	desc, err := htmlx.ParseString(doc)
	if err != nil {
		return ServerMessage{Type: TypeError, Seq: s.seq, Error: errorBody(err)}
	}
	stats, err := s.root.Render(ctx, desc)
	if err != nil {
		s.logger.Warn("render failed", "error", err)
		return ServerMessage{Type: TypeError, Seq: s.seq, Error: errorBody(err)}
	}
	html, err := htmlx.String(s.root.Node())
	if err != nil {
		return ServerMessage{Type: TypeError, Seq: s.seq, Error: errorBody(err)}
	}

	s.seq++
	s.logger.Debug("render applied", "seq", s.seq, "entries", stats.Entries)
	return ServerMessage{
		Type:    TypePatch,
		Seq:     s.seq,
		Entries: stats.Entries,
		Renders: stats.Renders,
		Records: stats.Records,
		HTML:    html,
	}
}

// serve reads messages until the connection fails or ctx is done.
func (s *Session) serve(ctx context.Context, conn *websocket.Conn, enc Encoding) error {
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		reply := s.Handle(ctx, msg)
		var err error
		if enc == EncodingBinary && reply.Type != TypePong {
			err = conn.WriteMessage(websocket.BinaryMessage, encodeBinary(reply))
		} else {
			err = conn.WriteJSON(reply)
		}
		if err != nil {
			return err
		}
	}
}

func encodeBinary(reply ServerMessage) []byte {
	if reply.Type == TypeError {
		return protocol.EncodeError(reply.Error.Code, reply.Error.Message)
	}
	data, err := protocol.EncodePatch(protocol.Patch{Seq: uint64(reply.Seq), Records: reply.Records})
	if err != nil {
		e := errorBody(err)
		return protocol.EncodeError(e.Code, e.Message)
	}
	return data
}
