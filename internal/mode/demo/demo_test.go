// ABOUTME: Tests for the demo sequence using a scripted fake council client
// ABOUTME: Verifies call order, output content, and error handling policy

package demo

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/m0nk111/CouncilOfDicks/internal/council"
	"github.com/m0nk111/CouncilOfDicks/internal/jsonrpc"
)

type fakeCouncil struct {
	calls []string

	tools      []council.Tool
	askResult  *council.AskResult
	askErr     error
	session    *council.Session
	sessionErr error
	sessions   []council.Session
}

func (f *fakeCouncil) ListTools(_ context.Context) ([]council.Tool, error) {
	f.calls = append(f.calls, "tools/list")
	return f.tools, nil
}

func (f *fakeCouncil) AskQuestion(_ context.Context, question string, wait bool) (*council.AskResult, error) {
	f.calls = append(f.calls, fmt.Sprintf("council/ask(%s,%v)", question, wait))
	return f.askResult, f.askErr
}

func (f *fakeCouncil) GetSession(_ context.Context, sessionID string) (*council.Session, error) {
	f.calls = append(f.calls, "council/get_session("+sessionID+")")
	return f.session, f.sessionErr
}

func (f *fakeCouncil) ListSessions(_ context.Context) ([]council.Session, error) {
	f.calls = append(f.calls, "council/list_sessions")
	return f.sessions, nil
}

func newHappyFake() *fakeCouncil {
	consensus := "Go, obviously."
	return &fakeCouncil{
		tools: []council.Tool{
			{Name: "council_ask", Description: "Ask the council"},
		},
		askResult: &council.AskResult{SessionID: "s1", Status: "GatheringResponses"},
		session: &council.Session{
			ID:        "s1",
			Question:  "What is the best programming language for systems programming?",
			Responses: []council.SessionResponse{{ModelName: "llama3", Response: "Go."}},
			Consensus: &consensus,
			Status:    council.StatusConsensusReached,
		},
		sessions: []council.Session{
			{ID: "s1", Question: strings.Repeat("long question ", 20), Status: council.StatusConsensusReached},
		},
	}
}

func TestRun_FullSequence(t *testing.T) {
	fake := newHappyFake()
	var out bytes.Buffer

	if err := Run(context.Background(), fake, &out, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantCalls := []string{
		"tools/list",
		"council/ask(" + DefaultQuestion + ",false)",
		"council/get_session(s1)",
		"council/list_sessions",
	}
	if len(fake.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", fake.calls, wantCalls)
	}
	for i, want := range wantCalls {
		if fake.calls[i] != want {
			t.Errorf("call %d = %q, want %q", i, fake.calls[i], want)
		}
	}

	text := out.String()
	for _, want := range []string{"council_ask", "session created: s1", "Go, obviously.", "total sessions: 1", "Demo completed."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRun_TruncatesLongQuestions(t *testing.T) {
	fake := newHappyFake()
	var out bytes.Buffer

	if err := Run(context.Background(), fake, &out, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(out.String(), "...") {
		t.Error("long question in the session listing was not truncated")
	}
}

func TestRun_CustomQuestionAndWait(t *testing.T) {
	fake := newHappyFake()
	var out bytes.Buffer

	err := Run(context.Background(), fake, &out, Options{Question: "Why?", WaitForConsensus: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fake.calls[1] != "council/ask(Why?,true)" {
		t.Errorf("ask call = %q", fake.calls[1])
	}
}

func TestRun_ServerErrorContinues(t *testing.T) {
	fake := newHappyFake()
	fake.sessionErr = &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: "Session not found"}
	fake.session = nil
	var out bytes.Buffer

	if err := Run(context.Background(), fake, &out, Options{}); err != nil {
		t.Fatalf("Run: %v (server errors should not abort the demo)", err)
	}
	if !strings.Contains(out.String(), "Session not found") {
		t.Error("server error was not reported")
	}
	if fake.calls[len(fake.calls)-1] != "council/list_sessions" {
		t.Errorf("demo stopped early; calls = %v", fake.calls)
	}
}

func TestRun_TransportErrorAborts(t *testing.T) {
	fake := newHappyFake()
	fake.askErr = fmt.Errorf("%w: broken pipe", council.ErrIO)
	var out bytes.Buffer

	err := Run(context.Background(), fake, &out, Options{})
	if err == nil {
		t.Fatal("want error when the transport fails mid-demo")
	}
	for _, call := range fake.calls {
		if strings.HasPrefix(call, "council/get_session") {
			t.Error("demo continued past a transport failure")
		}
	}
}

func TestRun_NoSessionSkipsDetails(t *testing.T) {
	fake := newHappyFake()
	fake.askResult = &council.AskResult{} // no session id
	var out bytes.Buffer

	if err := Run(context.Background(), fake, &out, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, call := range fake.calls {
		if strings.HasPrefix(call, "council/get_session") {
			t.Error("get_session called without a session id")
		}
	}
}
