// ABOUTME: Four-step demo against the council server: tools, ask, get session, list sessions
// ABOUTME: A bounded procedure over an injected client; no process-wide state

package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/m0nk111/CouncilOfDicks/internal/council"
	"github.com/m0nk111/CouncilOfDicks/internal/jsonrpc"
)

// DefaultQuestion is the question the demo submits when none is given.
const DefaultQuestion = "What is the best programming language for systems programming?"

// questionPreviewWidth bounds question display in the session listing.
const questionPreviewWidth = 60

// Council is the slice of the client the demo needs. Satisfied by
// *council.Client; faked in tests.
type Council interface {
	ListTools(ctx context.Context) ([]council.Tool, error)
	AskQuestion(ctx context.Context, question string, waitForConsensus bool) (*council.AskResult, error)
	GetSession(ctx context.Context, sessionID string) (*council.Session, error)
	ListSessions(ctx context.Context) ([]council.Session, error)
}

// Options adjusts the demo run.
type Options struct {
	// Question overrides DefaultQuestion.
	Question string
	// WaitForConsensus is forwarded to council/ask.
	WaitForConsensus bool
	// Styled enables colored output and markdown rendering.
	Styled bool
}

// Run executes the demo sequence against an already-connected client,
// writing narration to out. Server-side errors are reported and the demo
// moves on; transport failures abort, since the connection is no longer
// trustworthy.
func Run(ctx context.Context, client Council, out io.Writer, opts Options) error {
	st := newStyles(opts.Styled)

	question := opts.Question
	if question == "" {
		question = DefaultQuestion
	}

	fmt.Fprintln(out, st.title.Render("Council Of Dicks - MCP Client Demo"))

	// Step 1: list the server's tools.
	fmt.Fprintln(out, st.header.Render("1. Available tools"))
	tools, err := client.ListTools(ctx)
	if err := report(out, st, err); err != nil {
		return err
	}
	for _, tool := range tools {
		fmt.Fprintf(out, "  %s %s: %s\n", st.bullet.Render("•"), st.name.Render(tool.Name), tool.Description)
	}

	// Step 2: submit the question.
	fmt.Fprintln(out, st.header.Render("2. Ask a question"))
	fmt.Fprintf(out, "  %s\n", question)
	ask, err := client.AskQuestion(ctx, question, opts.WaitForConsensus)
	if err := report(out, st, err); err != nil {
		return err
	}

	var sessionID string
	if ask != nil {
		sessionID = ask.SessionID
		fmt.Fprintf(out, "  session created: %s (status: %s)\n", st.name.Render(ask.SessionID), ask.Status)
	}

	// Step 3: fetch the session just created.
	if sessionID != "" {
		fmt.Fprintln(out, st.header.Render("3. Session details"))
		session, err := client.GetSession(ctx, sessionID)
		if err := report(out, st, err); err != nil {
			return err
		}
		if session != nil {
			printSession(out, st, session)
		}
	}

	// Step 4: list every session the server knows.
	fmt.Fprintln(out, st.header.Render("4. All sessions"))
	sessions, err := client.ListSessions(ctx)
	if err := report(out, st, err); err != nil {
		return err
	}
	fmt.Fprintf(out, "  total sessions: %d\n", len(sessions))
	for i, session := range sessions {
		preview := runewidth.Truncate(session.Question, questionPreviewWidth, "...")
		fmt.Fprintf(out, "  %d. %s %s [%s, %d responses]\n",
			i+1, st.name.Render(session.ID), preview, session.Status, len(session.Responses))
	}

	fmt.Fprintln(out, st.done.Render("Demo completed."))
	return nil
}

// printSession writes one session's details, rendering consensus text as
// markdown when styled.
func printSession(out io.Writer, st styles, session *council.Session) {
	fmt.Fprintf(out, "  session:   %s\n", st.name.Render(session.ID))
	fmt.Fprintf(out, "  question:  %s\n", session.Question)
	fmt.Fprintf(out, "  status:    %s\n", session.Status)
	fmt.Fprintf(out, "  responses: %d\n", len(session.Responses))
	for _, r := range session.Responses {
		fmt.Fprintf(out, "    %s %s\n", st.bullet.Render("•"), st.name.Render(r.ModelName))
	}
	if session.Consensus != nil {
		fmt.Fprintf(out, "  consensus:\n%s\n", st.renderMarkdown(*session.Consensus))
	} else {
		fmt.Fprintln(out, "  consensus: (none yet)")
	}
}

// report prints a server-side error and swallows it so the demo continues;
// any other error aborts the run.
func report(out io.Writer, st styles, err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		fmt.Fprintf(out, "  %s %s\n", st.errmark.Render("server error:"), rpcErr.Message)
		return nil
	}
	return err
}
