package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

func TestReportConfigValidate(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		cfg := model.ReportConfig{
			FormID:            "Image Safari Crop Scout (Phone Approach)",
			AllowedSubmitters: []string{"is_cimmyt", "is_cip_ke"},
			Sort:              types.SortAscending,
		}
		gt.NoError(t, cfg.Validate())
		gt.Equal(t, cfg.SortOrder(), types.SortAscending)
		gt.Equal(t, cfg.AllowList().Len(), 2)
	})

	t.Run("sort defaults to descending", func(t *testing.T) {
		cfg := model.ReportConfig{FormID: "f"}
		gt.NoError(t, cfg.Validate())
		gt.Equal(t, cfg.SortOrder(), types.SortDescending)
	})

	t.Run("error when form ID is empty", func(t *testing.T) {
		cfg := model.ReportConfig{}
		err := cfg.Validate()
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagConfig)).True()
	})

	t.Run("error when sort order is unknown", func(t *testing.T) {
		cfg := model.ReportConfig{FormID: "f", Sort: "newest"}
		gt.Error(t, cfg.Validate())
	})

	t.Run("error when submitter is duplicated", func(t *testing.T) {
		cfg := model.ReportConfig{FormID: "f", AllowedSubmitters: []string{"a", "a"}}
		gt.Error(t, cfg.Validate())
	})
}

func TestSheetName(t *testing.T) {
	gt.Equal(t, model.SheetName("site/a\\b"), "site_a_b")
	gt.Equal(t, model.SheetName("plot[1]:a?"), "plot_1__a_")
	gt.Equal(t, model.SheetName("abcdefghijklmnopqrstuvwxyz0123456789"), "abcdefghijklmnopqrstuvwxyz01234")
}

func TestReportSummary(t *testing.T) {
	t.Run("totals and links", func(t *testing.T) {
		report := &model.Report{
			Totals: &model.SubmitterTotalsTable{
				Submitters: []string{"alice", "bob"},
				Totals:     []int{12, 3},
			},
		}
		gt.Equal(t, report.Summary("https://example.com/sheet", ""),
			"📸 Total Image Count Summary:\n"+
				"• alice: 12 images\n"+
				"• bob: 3 images\n"+
				"\n✅ Summary updated and saved at: 🔗 https://example.com/sheet\n")
	})

	t.Run("no submitters", func(t *testing.T) {
		report := &model.Report{Totals: &model.SubmitterTotalsTable{}}
		gt.Equal(t, report.Summary(),
			"📸 Total Image Count Summary:\nNo submissions from allowed submitters.\n")
	})
}
