package events

// Event types emitted during party generation.
const (
	PartyStarted     = "party:started"
	PartyCandidates  = "party:candidates"
	PartyMember      = "party:member"
	PartyCompleted   = "party:completed"
	PartyFailed      = "party:failed"
	PartyRateLimited = "party:rate_limited"
	CatalogReloaded  = "catalog:reloaded"
)

// PartyStartedEvent is the payload for party:started events.
type PartyStartedEvent struct {
	RequestID  string `json:"requestId"`
	Mode       string `json:"mode"`
	Theme      string `json:"theme,omitempty"`
	Count      int    `json:"count"`
	BattleMode string `json:"battleMode"`
}

// PartyCandidatesEvent is the payload for party:candidates events.
// Sent once the provider has answered.
type PartyCandidatesEvent struct {
	RequestID  string   `json:"requestId"`
	Theme      string   `json:"theme"`
	Candidates []string `json:"candidates"`
}

// PartyMemberEvent is the payload for party:member events.
// Sent for every enrichment attempt, accepted or not.
type PartyMemberEvent struct {
	RequestID string `json:"requestId"`
	Candidate string `json:"candidate"`
	Position  int    `json:"position"`
	Accepted  bool   `json:"accepted"`
	Error     string `json:"error,omitempty"`
}

// PartyCompletedEvent is the payload for party:completed events.
type PartyCompletedEvent struct {
	RequestID   string `json:"requestId"`
	PartyID     string `json:"partyId"`
	Members     int    `json:"members"`
	Requested   int    `json:"requested"`
	Partial     bool   `json:"partial"`
	GuideSource string `json:"guideSource"`
	DurationMs  int64  `json:"durationMs"`
}

// PartyFailedEvent is the payload for party:failed events.
type PartyFailedEvent struct {
	RequestID string `json:"requestId"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// PartyRateLimitedEvent is the payload for party:rate_limited events.
type PartyRateLimitedEvent struct {
	RequestID         string `json:"requestId"`
	Provider          string `json:"provider"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

// CatalogReloadedEvent is the payload for catalog:reloaded events.
type CatalogReloadedEvent struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}
