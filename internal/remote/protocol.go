// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     remote
// Description: WebSocket access to a running console
// Author:      Mike Stoffels
// Created:     2025-12-08
// License:     MIT
// ============================================================================

package remote

import "github.com/msto63/devconsole/pkg/core/version"

// Message types
const (
	TypeHello  = "hello"  // server -> client, first frame of a session
	TypeLine   = "line"   // client -> server, one console line
	TypeOutput = "output" // server -> client, display text of a line
	TypePing   = "ping"
	TypePong   = "pong"
	TypeError  = "error"
)

// Request is a client frame
type Request struct {
	Type string `json:"type"`
	Line string `json:"line,omitempty"`
}

// Response is a server frame
type Response struct {
	Type     string `json:"type"`
	Session  string `json:"session,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Output   string `json:"output,omitempty"`

	// Clear and Exit relay the console hooks fired by the line
	Clear bool `json:"clear,omitempty"`
	Exit  bool `json:"exit,omitempty"`

	// Buffer is a line the console put back for editing, e.g. by history recall
	Buffer string `json:"buffer,omitempty"`

	Error string `json:"error,omitempty"`
}

func hello(session string) Response {
	return Response{Type: TypeHello, Session: session, Protocol: version.Protocol}
}
