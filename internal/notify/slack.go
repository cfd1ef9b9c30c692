// Package notify delivers alert notifications to Slack.
package notify

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/stocksentry/stocksentry/internal/alerts"
	"github.com/stocksentry/stocksentry/internal/utils"
)

// SlackNotifier posts alert messages to a Slack channel via the Web API.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

// PostAlert sends one alert as a channel message.
func (n *SlackNotifier) PostAlert(alert alerts.Alert) error {
	text := FormatAlertMessage(alert)
	_, _, err := n.client.PostMessage(n.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("posting alert %s to slack: %w", alert.ID, err)
	}
	return nil
}

// FormatAlertMessage renders an alert as Slack message text.
func FormatAlertMessage(alert alerts.Alert) string {
	return fmt.Sprintf("%s *%s*\n%s",
		PriorityEmoji(alert.Priority),
		utils.TruncateText(alert.Title, 150),
		utils.TruncateText(alert.Message, 500))
}

// PriorityEmoji returns the emoji marker for an alert priority.
func PriorityEmoji(p alerts.Priority) string {
	switch p {
	case alerts.PriorityCritical:
		return "🔴"
	case alerts.PriorityHigh:
		return "🟠"
	case alerts.PriorityMedium:
		return "🟡"
	case alerts.PriorityLow:
		return "🟢"
	default:
		return "⚪"
	}
}
