package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "odkpulse.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const reportYAML = `
form_id: photo_survey
allowed_submitters:
  - alice
  - bob
sort: asc
subject: Daily photos
sheet_url: https://docs.google.com/spreadsheets/d/abc123/edit
`

func TestReportConfigure(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		r := config.Report{ConfigPath: writeFile(t, reportYAML)}
		cfg, err := r.Configure()
		gt.NoError(t, err)
		gt.Equal(t, cfg.FormID, types.FormID("photo_survey"))
		gt.Equal(t, cfg.AllowedSubmitters, []string{"alice", "bob"})
		gt.Equal(t, cfg.SortOrder(), types.SortAscending)
		gt.Equal(t, cfg.Subject, "Daily photos")
		gt.Equal(t, cfg.SheetURL, "https://docs.google.com/spreadsheets/d/abc123/edit")
	})

	t.Run("flags override file", func(t *testing.T) {
		r := config.Report{
			ConfigPath:        writeFile(t, reportYAML),
			FormID:            "other_form",
			AllowedSubmitters: " carol , ,dave",
			Sort:              "desc",
		}
		cfg, err := r.Configure()
		gt.NoError(t, err)
		gt.Equal(t, cfg.FormID, types.FormID("other_form"))
		gt.Equal(t, cfg.AllowedSubmitters, []string{"carol", "dave"})
		gt.Equal(t, cfg.SortOrder(), types.SortDescending)
		gt.Equal(t, cfg.Subject, "Daily photos")
	})

	t.Run("flags only", func(t *testing.T) {
		r := config.Report{FormID: "photo_survey", AllowedSubmitters: "alice"}
		cfg, err := r.Configure()
		gt.NoError(t, err)
		gt.Equal(t, cfg.SortOrder(), types.SortDescending)
	})

	t.Run("missing form", func(t *testing.T) {
		r := config.Report{AllowedSubmitters: "alice"}
		_, err := r.Configure()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
	})

	t.Run("invalid sort", func(t *testing.T) {
		r := config.Report{FormID: "photo_survey", Sort: "sideways"}
		_, err := r.Configure()
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		r := config.Report{ConfigPath: filepath.Join(t.TempDir(), "none.yaml")}
		_, err := r.Configure()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
	})

	t.Run("broken YAML", func(t *testing.T) {
		r := config.Report{ConfigPath: writeFile(t, "form_id: [unclosed")}
		_, err := r.Configure()
		gt.Error(t, err)
	})
}

func TestScheduleConfigure(t *testing.T) {
	t.Run("daily with time zone", func(t *testing.T) {
		s := config.Schedule{DailyAt: "17:30", Timezone: "UTC"}
		schedule, err := s.Configure()
		gt.NoError(t, err)
		next := schedule.Next(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
		gt.True(t, next.Equal(time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC)))
	})

	t.Run("interval", func(t *testing.T) {
		s := config.Schedule{Interval: time.Hour}
		schedule, err := s.Configure()
		gt.NoError(t, err)
		gt.Equal(t, schedule.String(), "every 1h0m0s")
	})

	t.Run("both", func(t *testing.T) {
		s := config.Schedule{DailyAt: "17:30", Interval: time.Hour}
		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("neither", func(t *testing.T) {
		var s config.Schedule
		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("unknown time zone", func(t *testing.T) {
		s := config.Schedule{DailyAt: "17:30", Timezone: "Mars/Olympus"}
		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("startup run option", func(t *testing.T) {
		gt.A(t, (&config.Schedule{}).Options()).Length(0)
		gt.A(t, (&config.Schedule{SkipStartup: true}).Options()).Length(1)
	})
}

func TestEmailConfigure(t *testing.T) {
	t.Run("disabled without recipients", func(t *testing.T) {
		var e config.Email
		n, err := e.Configure()
		gt.NoError(t, err)
		gt.Nil(t, n)
	})

	t.Run("smtp", func(t *testing.T) {
		e := config.Email{
			Recipients:   "a@example.com, b@example.com",
			From:         "bot@example.com",
			SMTPHost:     "smtp.example.com",
			SMTPPort:     587,
			SMTPSecurity: "starttls",
		}
		n, err := e.Configure()
		gt.NoError(t, err)
		gt.Equal(t, n.Name(), "smtp")
		gt.Equal(t, e.RecipientList(), []string{"a@example.com", "b@example.com"})
	})

	t.Run("sendgrid wins over smtp", func(t *testing.T) {
		e := config.Email{
			Recipients:     "a@example.com",
			From:           "bot@example.com",
			SMTPHost:       "smtp.example.com",
			SMTPPort:       587,
			SendGridAPIKey: "SG.key",
		}
		n, err := e.Configure()
		gt.NoError(t, err)
		gt.Equal(t, n.Name(), "sendgrid")
	})

	t.Run("missing sender", func(t *testing.T) {
		e := config.Email{Recipients: "a@example.com", SMTPHost: "smtp.example.com", SMTPPort: 587}
		_, err := e.Configure()
		gt.Error(t, err)
	})

	t.Run("missing transport", func(t *testing.T) {
		e := config.Email{Recipients: "a@example.com", From: "bot@example.com"}
		_, err := e.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid security", func(t *testing.T) {
		e := config.Email{
			Recipients:   "a@example.com",
			From:         "bot@example.com",
			SMTPHost:     "smtp.example.com",
			SMTPPort:     587,
			SMTPSecurity: "ssl3",
		}
		_, err := e.Configure()
		gt.Error(t, err)
	})
}

func TestODKValidate(t *testing.T) {
	valid := config.ODK{BaseURL: "https://central.example.org", ProjectID: 3, Email: "a@example.com", Password: "pw"}
	gt.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(o *config.ODK){
		"url":      func(o *config.ODK) { o.BaseURL = "" },
		"project":  func(o *config.ODK) { o.ProjectID = 0 },
		"password": func(o *config.ODK) { o.Password = "" },
	} {
		t.Run(name, func(t *testing.T) {
			o := valid
			mutate(&o)
			gt.Error(t, o.Validate())
		})
	}
}
