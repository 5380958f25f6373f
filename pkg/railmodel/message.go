package railmodel

import (
	"fmt"

	"github.com/google/uuid"
)

type ServiceMessage struct {
	ID       string          `groups:"basic"`
	Text     string          `groups:"basic"`
	Severity MessageSeverity `groups:"basic"`
	Category MessageCategory `groups:"basic"`
}

type MessageSeverity string

const (
	MessageSeverityNormal MessageSeverity = "Normal"
	MessageSeverityMinor  MessageSeverity = "Minor"
	MessageSeverityMajor  MessageSeverity = "Major"
)

type MessageCategory string

const (
	MessageCategoryStation    MessageCategory = "Station"
	MessageCategoryService    MessageCategory = "Service"
	MessageCategoryConnection MessageCategory = "Connection"
	MessageCategorySystem     MessageCategory = "System"
)

var messageNamespace = uuid.MustParse("6f1c1d0e-3b7e-4f43-9a57-1d2f3e0b7a11")

// NewServiceMessage generates a name based ID from the scope, position and text so the same
// feed document always produces the same message IDs
func NewServiceMessage(scope string, index int, text string, severity MessageSeverity, category MessageCategory) ServiceMessage {
	name := fmt.Sprintf("%s:%s:%d:%s", scope, category, index, text)

	return ServiceMessage{
		ID:       uuid.NewSHA1(messageNamespace, []byte(name)).String(),
		Text:     text,
		Severity: severity,
		Category: category,
	}
}
