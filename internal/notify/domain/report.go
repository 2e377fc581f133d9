package domain

// SenderIdentity is the resolved "from" identity for one dispatch. It is
// recomputed on every send because company configuration can change between
// sends.
type SenderIdentity struct {
	FromAddress      string
	FromName         string
	RoutingNamespace string
}

// RecipientSet partitions input addresses by format validation. Every input
// address appears in exactly one list; order and duplicates are preserved.
type RecipientSet struct {
	Valid   []string
	Invalid []string
}

// RenderedMessage is the composed subject and body for one template+event.
// At least one of HTML/Text must be non-empty for a send to be attempted.
type RenderedMessage struct {
	Subject string
	HTML    string
	Text    string
}

// Outcome is the per-recipient result of a dispatch attempt.
// Success implies MessageID is set and Error is empty, and vice versa.
type Outcome struct {
	Address   string `json:"address"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report is the aggregated result of a full notification call.
type Report struct {
	Success          bool      `json:"success"`
	Outcomes         []Outcome `json:"outcomes"`
	SuccessCount     int       `json:"success_count"`
	FailureCount     int       `json:"failure_count"`
	InvalidAddresses []string  `json:"invalid_addresses"`
}
