package model

import (
	"time"

	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// Form is a form definition in an ODK Central project
type Form struct {
	ID        types.FormID
	Name      string
	State     string
	CreatedAt time.Time
}

// FormSummary is a form with the number of its submissions. Err is set when
// the submissions could not be counted.
type FormSummary struct {
	Form        *Form
	Submissions int
	Err         error
}
