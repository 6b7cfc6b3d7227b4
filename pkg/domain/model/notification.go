package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Notification is a plain-text message delivered by a notifier
type Notification struct {
	Subject    string
	Body       string
	Recipients []string
}

// ParseRecipients splits a comma separated recipient list, trimming blanks
func ParseRecipients(s string) []string {
	var recipients []string
	for _, r := range strings.Split(s, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			recipients = append(recipients, r)
		}
	}
	return recipients
}

// Validate validates the notification
func (n *Notification) Validate() error {
	if n.Subject == "" {
		return goerr.New("notification subject is required")
	}
	if n.Body == "" {
		return goerr.New("notification body is required")
	}
	return nil
}

// DefaultSubject is the notification subject used when none is configured
const DefaultSubject = "ODK Summary Update"
