package models

// Game describes a single HoYoLAB title that supports the daily check-in.
// Values are immutable once the registry hands them out.
type Game struct {
	Key       string
	Name      string
	URL       string
	Username  string
	AvatarURL string
	Success   SuccessFormat
}

// SuccessFormat is the message rendered when the check-in endpoint reports "OK".
type SuccessFormat struct {
	Headline    string
	FlavorLines []string
}

// Outcome classifies a check-in response.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSucceeded
	OutcomeInformational
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeInformational:
		return "informational"
	default:
		return "failed"
	}
}

// Result is the outcome of one check-in attempt for one game.
type Result struct {
	Game    Game
	Outcome Outcome
	// Message is the raw "message" field returned by the check-in endpoint.
	Message string
	RetCode int
	// Content is the formatted Discord message, prefix included.
	Content string
	Silent  bool
	Err     error
}
