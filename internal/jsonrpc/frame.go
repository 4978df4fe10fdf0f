// ABOUTME: Line framer for JSON-RPC over a byte stream: one message per newline-terminated line
// ABOUTME: EncodeFrame stamps the version; DecodeFrame validates version, id, and result XOR error

package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed reports input that is not well-formed JSON.
var ErrMalformed = errors.New("malformed frame")

// ErrProtocol reports well-formed JSON that violates the JSON-RPC contract:
// wrong or missing version, non-positive id, or result/error both present or
// both absent.
var ErrProtocol = errors.New("protocol violation")

// EncodeFrame serializes req to a single JSON line terminated by exactly one
// newline. The version field is stamped, so callers may leave it empty.
func EncodeFrame(req *Request) ([]byte, error) {
	req.JSONRPC = Version

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeFrame parses one reply line (with or without its trailing newline)
// into a Response. It fails with ErrMalformed on non-JSON input and with
// ErrProtocol when required fields are missing or the success-XOR-failure
// invariant does not hold.
func DecodeFrame(line []byte) (*Response, error) {
	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrMalformed)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if resp.JSONRPC != Version {
		return nil, fmt.Errorf("%w: jsonrpc version %q, want %q", ErrProtocol, resp.JSONRPC, Version)
	}
	if resp.ID <= 0 {
		return nil, fmt.Errorf("%w: missing or invalid id", ErrProtocol)
	}
	if (resp.Result != nil) == (resp.Error != nil) {
		return nil, fmt.Errorf("%w: response must carry exactly one of result and error", ErrProtocol)
	}

	return &resp, nil
}
