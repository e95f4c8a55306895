package live

import (
	stderrors "errors"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/journal"
)

// MessageType identifies a protocol message.
type MessageType string

const (
	// Client to server.
	TypeRender MessageType = "render"
	TypePing   MessageType = "ping"

	// Server to client.
	TypePatch MessageType = "patch"
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// ClientMessage is sent by the client.
type ClientMessage struct {
	Type MessageType `json:"type"`
	HTML string      `json:"html,omitempty"`
}

// ServerMessage is sent to the client.
type ServerMessage struct {
	Type    MessageType      `json:"type"`
	Seq     int              `json:"seq,omitempty"`
	Entries int              `json:"entries,omitempty"`
	Renders int              `json:"renders,omitempty"`
	Records []journal.Record `json:"records,omitempty"`
	HTML    string           `json:"html,omitempty"`
	Error   *ErrorBody       `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// DiffRequest is the body of POST /diff.
type DiffRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// DiffResponse is the reply to POST /diff.
type DiffResponse struct {
	Entries int              `json:"entries"`
	Records []journal.Record `json:"records"`
	HTML    string           `json:"html"`
}

func errorBody(err error) *ErrorBody {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return &ErrorBody{Code: e.Code, Message: e.Error()}
	}
	return &ErrorBody{Message: err.Error()}
}
