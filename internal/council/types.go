// ABOUTME: Typed results for the council server's methods: tools, sessions, responses
// ABOUTME: Field names match the wire shapes emitted by the Council MCP server

package council

import "encoding/json"

// SessionStatus is the deliberation phase a council session is in.
type SessionStatus string

// Session phases, in the order the server moves through them.
const (
	StatusGatheringResponses SessionStatus = "GatheringResponses"
	StatusCommitmentPhase    SessionStatus = "CommitmentPhase"
	StatusRevealPhase        SessionStatus = "RevealPhase"
	StatusConsensusReached   SessionStatus = "ConsensusReached"
	StatusFailed             SessionStatus = "Failed"
)

// Terminal reports whether the session has finished deliberating.
func (s SessionStatus) Terminal() bool {
	return s == StatusConsensusReached || s == StatusFailed
}

// Tool describes one operation exposed by the server via tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// AskResult is returned by council/ask. The session starts gathering
// responses immediately; consensus arrives later via GetSession polling.
type AskResult struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// SessionResponse is one AI peer's answer within a session.
type SessionResponse struct {
	ModelName string  `json:"model_name"`
	Response  string  `json:"response"`
	PeerID    string  `json:"peer_id"`
	Timestamp int64   `json:"timestamp"`
	Signature *string `json:"signature,omitempty"`
	PublicKey *string `json:"public_key,omitempty"`
}

// Session is the full state of one council deliberation. Commitments and
// reveals belong to the voting rounds; this client only displays them, so
// they stay raw.
type Session struct {
	ID          string            `json:"id"`
	Question    string            `json:"question"`
	Responses   []SessionResponse `json:"responses"`
	Commitments []json.RawMessage `json:"commitments,omitempty"`
	Reveals     []json.RawMessage `json:"reveals,omitempty"`
	Consensus   *string           `json:"consensus"`
	Status      SessionStatus     `json:"status"`
	CreatedAt   int64             `json:"created_at"`
}
