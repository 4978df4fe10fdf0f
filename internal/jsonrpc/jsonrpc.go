// ABOUTME: JSON-RPC 2.0 wire types shared by the council client and its tests
// ABOUTME: Defines Request, Response, Error, and the standard error codes

package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Version is the protocol version stamped on every request and expected on
// every response.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes. The council server emits ParseError for
// unreadable frames and InvalidParams for unknown session ids.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is
// set on a well-formed reply; DecodeFrame enforces this.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object. It is returned to callers as data,
// not as a transport failure.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
