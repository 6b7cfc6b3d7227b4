package email

import (
	"net/mail"
	"time"

	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// BuildMessage exposes buildMessage for tests
func BuildMessage(from mail.Address, n *model.Notification, now time.Time) ([]byte, error) {
	return buildMessage(from, n, now)
}
