// ABOUTME: Synchronous council client: one request in flight, correlation-checked replies
// ABOUTME: Typed wrappers for tools/list, council/ask, council/get_session, council/list_sessions

package council

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/m0nk111/CouncilOfDicks/internal/jsonrpc"
)

// Method names understood by the council server.
const (
	MethodListTools    = "tools/list"
	MethodAsk          = "council/ask"
	MethodGetSession   = "council/get_session"
	MethodListSessions = "council/list_sessions"
)

// AskParams are the parameters of council/ask.
type AskParams struct {
	Question         string `json:"question"`
	WaitForConsensus bool   `json:"wait_for_consensus"`
}

// GetSessionParams are the parameters of council/get_session.
type GetSessionParams struct {
	SessionID string `json:"session_id"`
}

// Client issues synchronous JSON-RPC calls over a single connection. Request
// ids start at 1 and increase by one per call; a new connection means a new
// Client and a fresh counter. Not safe for concurrent calls.
type Client struct {
	transport Transport
	nextID    atomic.Int64

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an already-connected transport.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Connect dials the council server and returns a ready client.
func Connect(ctx context.Context, addr string, opts DialOptions) (*Client, error) {
	t, err := Dial(ctx, addr, opts)
	if err != nil {
		return nil, err
	}
	return NewClient(t), nil
}

// Call sends one request and blocks for its reply. params may be nil, in
// which case the params field is omitted from the wire. Server-side errors
// come back inside the Response; only transport and framing failures are
// returned as errors, and they leave the connection unusable.
func (c *Client) Call(ctx context.Context, method string, params any) (*jsonrpc.Response, error) {
	c.mu.Lock()
	if c.transport == nil || c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: call %s", ErrState, method)
	}
	c.mu.Unlock()

	req := &jsonrpc.Request{
		ID:     c.nextID.Add(1),
		Method: method,
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshaling params for %s: %w", method, err)
		}
		req.Params = raw
	}

	resp, err := c.transport.Exchange(ctx, req)
	if err != nil {
		return nil, err
	}

	// A reply for a different id means the stream is desynchronized. Fail
	// fast instead of trusting ordering.
	if resp.ID != req.ID {
		return nil, fmt.Errorf("%w: sent id %d, got id %d", ErrCorrelation, req.ID, resp.ID)
	}

	return resp, nil
}

// callInto performs a Call and decodes a successful result into out. A
// server-side error is returned as the *jsonrpc.Error itself.
func (c *Client) callInto(ctx context.Context, method string, params, out any) error {
	resp, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("parsing %s result: %w", method, err)
	}
	return nil
}

// ListTools returns the tools the server advertises.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := c.callInto(ctx, MethodListTools, nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// AskQuestion submits a question for deliberation and returns the created
// session. The server does not block on consensus even when asked to wait;
// poll GetSession for the outcome.
func (c *Client) AskQuestion(ctx context.Context, question string, waitForConsensus bool) (*AskResult, error) {
	var result AskResult
	params := AskParams{Question: question, WaitForConsensus: waitForConsensus}
	if err := c.callInto(ctx, MethodAsk, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSession fetches one session by id. An unknown id comes back as a
// *jsonrpc.Error with code CodeInvalidParams.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	if err := c.callInto(ctx, MethodGetSession, GetSessionParams{SessionID: sessionID}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns every session the server is tracking.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.callInto(ctx, MethodListSessions, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Close releases the connection. Calls after Close fail with ErrState.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.transport == nil {
		return nil
	}
	c.closed = true
	return c.transport.Close()
}
