// ABOUTME: TCP transport speaking newline-delimited JSON-RPC to the council server
// ABOUTME: Buffers reads so partial or coalesced TCP segments never split a frame

package council

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/m0nk111/CouncilOfDicks/internal/jsonrpc"
	"github.com/m0nk111/CouncilOfDicks/internal/log"
)

// maxFrameSize caps a single reply line at 10MB. Council sessions carry full
// model responses, which can be large but not unbounded.
const maxFrameSize = 10 * 1024 * 1024

// Transport carries one JSON-RPC exchange at a time to the server.
type Transport interface {
	// Exchange writes one request frame and blocks until one reply frame
	// arrives. Exactly one write and one framed read per call.
	Exchange(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error)
	// Close releases the connection. Idempotent.
	Close() error
}

// TCPTransport is a Transport over a single plaintext TCP connection. A
// bufio.Reader accumulates incoming bytes and hands back complete
// newline-terminated frames, carrying partial trailing bytes over to the
// next read.
type TCPTransport struct {
	conn        net.Conn
	reader      *bufio.Reader
	callTimeout time.Duration
	closeOnce   sync.Once
	closeErr    error
}

// DialOptions configures connection establishment and per-call deadlines.
type DialOptions struct {
	// DialTimeout bounds connection establishment. Zero means the OS default.
	DialTimeout time.Duration
	// CallTimeout bounds each Exchange's read. Zero disables the deadline.
	CallTimeout time.Duration
}

// Dial connects to the council server at addr (host:port).
func Dial(ctx context.Context, addr string, opts DialOptions) (*TCPTransport, error) {
	dialer := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", ErrConnect, addr, err)
	}
	log.Debug("connected to %s", conn.RemoteAddr())

	return &TCPTransport{
		conn:        conn,
		reader:      bufio.NewReaderSize(conn, 64*1024),
		callTimeout: opts.CallTimeout,
	}, nil
}

// Exchange sends req and reads exactly one reply frame. Callers must not
// invoke it concurrently; there is no request multiplexing on the wire.
func (t *TCPTransport) Exchange(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	frame, err := jsonrpc.EncodeFrame(req)
	if err != nil {
		return nil, err
	}

	deadline := time.Time{}
	if t.callTimeout > 0 {
		deadline = time.Now().Add(t.callTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	if err := t.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: setting deadline: %v", ErrIO, err)
	}

	log.Debug("-> %s", frame[:len(frame)-1])
	if _, err := t.conn.Write(frame); err != nil {
		return nil, wrapIOErr("writing request", err)
	}

	line, err := t.readFrame()
	if err != nil {
		return nil, err
	}
	log.Debug("<- %s", line)

	return jsonrpc.DecodeFrame(line)
}

// readFrame blocks until a complete newline-terminated line is buffered.
func (t *TCPTransport) readFrame() ([]byte, error) {
	var buf []byte
	for {
		chunk, err := t.reader.ReadSlice('\n')
		buf = append(buf, chunk...)
		if err == nil {
			return buf, nil
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			if len(buf) > maxFrameSize {
				return nil, fmt.Errorf("%w: reply exceeds %d bytes", ErrIO, maxFrameSize)
			}
			continue
		}
		return nil, wrapIOErr("reading reply", err)
	}
}

// Close shuts the connection down. Safe to call more than once.
func (t *TCPTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

func wrapIOErr(op string, err error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrIO, op, err)
}
