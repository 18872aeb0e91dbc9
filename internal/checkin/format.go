package checkin

import (
	"github.com/bwmarrin/discordgo"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

const (
	SilentPrefix    = "[Silent Notification]\n"
	FailedText      = "Failed to check in"
	DefaultHeadline = "Successfully checked in!"
	okMessage       = "OK"
)

// Prefix returns the first line of every message: a silent marker for
// scheduled runs, otherwise a mention of the configured user.
func Prefix(silent bool, userID string) string {
	if silent {
		return SilentPrefix
	}
	return (&discordgo.User{ID: userID}).Mention() + "\n"
}

// SuccessText renders the success message for a game. pick selects a flavor
// line given the number of lines.
func SuccessText(format models.SuccessFormat, pick func(n int) int) string {
	headline := format.Headline
	if headline == "" {
		headline = DefaultHeadline
	}
	if len(format.FlavorLines) == 0 {
		return headline
	}

	line := format.FlavorLines[pick(len(format.FlavorLines))]
	return headline + "\n\n *" + line + "*"
}

// Classify maps the upstream message to an outcome and the message body
// that follows the prefix.
func Classify(game models.Game, message string, pick func(n int) int) (models.Outcome, string) {
	switch message {
	case "":
		return models.OutcomeFailed, FailedText
	case okMessage:
		return models.OutcomeSucceeded, SuccessText(game.Success, pick)
	default:
		return models.OutcomeInformational, "*" + message + "*"
	}
}
