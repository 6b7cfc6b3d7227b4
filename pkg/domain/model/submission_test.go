package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

func TestNormalizeSubmission(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		raw := model.RawSubmission(`{
			"__id": "uuid:1",
			"today": "2024-01-01",
			"__system": {"submitterName": "is_cimmyt", "reviewState": null},
			"photos": {"photoQuantity": 3, "photoSessionDuration": 65, "photo1": "a.zip"}
		}`)

		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.InstanceID, types.InstanceID("uuid:1"))
		gt.Equal(t, record.Date, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		gt.Equal(t, record.Submitter, "is_cimmyt")
		gt.Equal(t, record.PhotoCount, 3)
		gt.Equal(t, record.DurationSeconds, 65)
	})

	t.Run("missing optional fields take defaults", func(t *testing.T) {
		record, err := model.NormalizeSubmission(0, model.RawSubmission(`{"today": "2024-01-01"}`))
		gt.NoError(t, err)
		gt.Equal(t, record.Submitter, model.UnknownSubmitter)
		gt.Equal(t, record.PhotoCount, 0)
		gt.Equal(t, record.DurationSeconds, 0)
	})

	t.Run("null fields take defaults", func(t *testing.T) {
		raw := model.RawSubmission(`{
			"today": "2024-01-01",
			"__system": {"submitterName": null},
			"photos": {"photoQuantity": null, "photoSessionDuration": null}
		}`)
		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.Submitter, model.UnknownSubmitter)
		gt.Equal(t, record.PhotoCount, 0)
		gt.Equal(t, record.DurationSeconds, 0)
	})

	t.Run("null containers take defaults", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "__system": null, "photos": null}`)
		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.Submitter, model.UnknownSubmitter)
		gt.Equal(t, record.PhotoCount, 0)
	})

	t.Run("numeric strings and integral floats are coerced", func(t *testing.T) {
		raw := model.RawSubmission(`{
			"today": "2024-01-01",
			"photos": {"photoQuantity": "4", "photoSessionDuration": 120.0}
		}`)
		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.PhotoCount, 4)
		gt.Equal(t, record.DurationSeconds, 120)
	})

	t.Run("negative values are accepted as-is", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "photos": {"photoQuantity": -2, "photoSessionDuration": -10}}`)
		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.PhotoCount, -2)
		gt.Equal(t, record.DurationSeconds, -10)
	})

	t.Run("timestamp date is truncated to its calendar day", func(t *testing.T) {
		record, err := model.NormalizeSubmission(0, model.RawSubmission(`{"today": "2024-03-05T23:10:00+03:00"}`))
		gt.NoError(t, err)
		gt.Equal(t, record.Date, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	})

	t.Run("unparsable date fails with data format error", func(t *testing.T) {
		_, err := model.NormalizeSubmission(7, model.RawSubmission(`{"__id": "uuid:bad", "today": "01/02/2024"}`))
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
		values := goerr.Values(err)
		gt.V(t, values["index"]).Equal(7)
		gt.V(t, values["instance_id"]).Equal(types.InstanceID("uuid:bad"))
	})

	t.Run("missing date fails with data format error", func(t *testing.T) {
		_, err := model.NormalizeSubmission(0, model.RawSubmission(`{"__system": {"submitterName": "a"}}`))
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
	})

	t.Run("non-numeric count fails with data format error", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "photos": {"photoQuantity": "three"}}`)
		_, err := model.NormalizeSubmission(0, raw)
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
	})

	t.Run("fractional duration fails with data format error", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "photos": {"photoSessionDuration": 1.5}}`)
		_, err := model.NormalizeSubmission(0, raw)
		gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
	})

	t.Run("out of range count fails with data format error", func(t *testing.T) {
		for _, v := range []string{`1e20`, `-1e20`, `"9223372036854775808"`} {
			raw := model.RawSubmission(`{"today": "2024-01-01", "photos": {"photoQuantity": ` + v + `}}`)
			_, err := model.NormalizeSubmission(0, raw)
			gt.Error(t, err)
			gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
		}
	})

	t.Run("submitter name is trimmed", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "__system": {"submitterName": " alice "}}`)
		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.Submitter, "alice")
	})

	t.Run("blank submitter name is unknown", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "__system": {"submitterName": "   "}}`)
		record, err := model.NormalizeSubmission(0, raw)
		gt.NoError(t, err)
		gt.Equal(t, record.Submitter, model.UnknownSubmitter)
	})

	t.Run("non-string submitter fails with data format error", func(t *testing.T) {
		raw := model.RawSubmission(`{"today": "2024-01-01", "__system": {"submitterName": 42}}`)
		_, err := model.NormalizeSubmission(0, raw)
		gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
	})

	t.Run("non-object document fails with data format error", func(t *testing.T) {
		_, err := model.NormalizeSubmission(0, model.RawSubmission(`["2024-01-01"]`))
		gt.B(t, goerr.HasTag(err, model.ErrTagDataFormat)).True()
	})
}

func TestNormalizeSubmissions(t *testing.T) {
	t.Run("keeps input order", func(t *testing.T) {
		records, err := model.NormalizeSubmissions([]model.RawSubmission{
			model.RawSubmission(`{"today": "2024-01-02", "__system": {"submitterName": "b"}}`),
			model.RawSubmission(`{"today": "2024-01-01", "__system": {"submitterName": "a"}}`),
		})
		gt.NoError(t, err)
		gt.Equal(t, len(records), 2)
		gt.Equal(t, records[0].Submitter, "b")
		gt.Equal(t, records[1].Submitter, "a")
	})

	t.Run("fails on the first malformed record", func(t *testing.T) {
		_, err := model.NormalizeSubmissions([]model.RawSubmission{
			model.RawSubmission(`{"today": "2024-01-02"}`),
			model.RawSubmission(`{"today": "yesterday"}`),
		})
		gt.Error(t, err)
		gt.V(t, goerr.Values(err)["index"]).Equal(1)
	})

	t.Run("empty input", func(t *testing.T) {
		records, err := model.NormalizeSubmissions(nil)
		gt.NoError(t, err)
		gt.Equal(t, len(records), 0)
	})
}

func TestInstanceIDOf(t *testing.T) {
	gt.Equal(t, model.InstanceIDOf(model.RawSubmission(`{"__id": "uuid:x"}`)), types.InstanceID("uuid:x"))
	gt.Equal(t, model.InstanceIDOf(model.RawSubmission(`{"__id": 5}`)), types.InstanceID(""))
	gt.Equal(t, model.InstanceIDOf(model.RawSubmission(`not json`)), types.InstanceID(""))
}

func TestZipAttachments(t *testing.T) {
	t.Run("only zip file names", func(t *testing.T) {
		raw := model.RawSubmission(`{
			"__id": "uuid:1",
			"photos": {"photoQuantity": 2, "part2": "b.zip", "part1": "a.zip", "note": "x.jpg", "empty": null}
		}`)
		gt.Equal(t, model.ZipAttachments(raw), []string{"a.zip", "b.zip"})
	})

	t.Run("no photos group", func(t *testing.T) {
		gt.Nil(t, model.ZipAttachments(model.RawSubmission(`{"__id": "uuid:1"}`)))
	})

	t.Run("malformed document", func(t *testing.T) {
		gt.Nil(t, model.ZipAttachments(model.RawSubmission(`[1]`)))
	})
}
