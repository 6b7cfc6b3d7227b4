package model

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// UnknownSubmitter is used when a submission carries no submitter name
const UnknownSubmitter = "unknown"

// RawSubmission is one submission exactly as returned by ODK Central's OData
// endpoint: a nested JSON object.
type RawSubmission = json.RawMessage

// SubmissionRecord is the flattened shape consumed by the aggregation pipeline
type SubmissionRecord struct {
	InstanceID      types.InstanceID
	Date            time.Time
	Submitter       string
	PhotoCount      int
	DurationSeconds int
}

// submissionView is the typed projection of the fields we read from a raw
// submission. Everything else in the document is ignored.
type submissionView struct {
	Today  *string     `json:"today"`
	System *systemView `json:"__system"`
	Photos *photosView `json:"photos"`
}

type systemView struct {
	SubmitterName *string `json:"submitterName"`
}

type photosView struct {
	PhotoQuantity        optionalInt `json:"photoQuantity"`
	PhotoSessionDuration optionalInt `json:"photoSessionDuration"`
}

// optionalInt accepts null, an integral JSON number or a numeric string.
type optionalInt struct {
	Value int
	Valid bool
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*o = optionalInt{}
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*o = optionalInt{}
			return nil
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		*o = optionalInt{Value: n, Valid: true}
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return goerr.New("not an integer", goerr.V("value", s))
	}
	if f < math.MinInt || f >= math.MaxInt {
		return goerr.New("integer out of range", goerr.V("value", s))
	}
	*o = optionalInt{Value: int(f), Valid: true}
	return nil
}

// InstanceIDOf extracts `__id` from a raw submission. It returns an empty ID
// when the document has none or is not an object.
func InstanceIDOf(raw RawSubmission) types.InstanceID {
	var v struct {
		ID any `json:"__id"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	if s, ok := v.ID.(string); ok {
		return types.InstanceID(s)
	}
	return ""
}

// NormalizeSubmission maps one raw submission to a SubmissionRecord.
// Missing optional fields take their defaults; a missing or unparsable date
// and wrongly shaped fields fail with ErrTagDataFormat.
func NormalizeSubmission(index int, raw RawSubmission) (SubmissionRecord, error) {
	instanceID := InstanceIDOf(raw)

	var view submissionView
	if err := json.Unmarshal(raw, &view); err != nil {
		return SubmissionRecord{}, goerr.Wrap(err, "malformed submission",
			goerr.T(ErrTagDataFormat),
			goerr.V("index", index),
			goerr.V("instance_id", instanceID))
	}

	if view.Today == nil {
		return SubmissionRecord{}, goerr.New("submission has no date",
			goerr.T(ErrTagDataFormat),
			goerr.V("index", index),
			goerr.V("instance_id", instanceID))
	}
	date, err := ParseDate(strings.TrimSpace(*view.Today))
	if err != nil {
		return SubmissionRecord{}, goerr.Wrap(err, "unparsable submission date",
			goerr.T(ErrTagDataFormat),
			goerr.V("index", index),
			goerr.V("instance_id", instanceID))
	}

	record := SubmissionRecord{
		InstanceID: instanceID,
		Date:       date,
		Submitter:  UnknownSubmitter,
	}
	if view.System != nil && view.System.SubmitterName != nil {
		if name := strings.TrimSpace(*view.System.SubmitterName); name != "" {
			record.Submitter = name
		}
	}
	if view.Photos != nil {
		record.PhotoCount = view.Photos.PhotoQuantity.Value
		record.DurationSeconds = view.Photos.PhotoSessionDuration.Value
	}

	return record, nil
}

// NormalizeSubmissions normalizes every raw submission, failing on the first
// malformed one.
func NormalizeSubmissions(raws []RawSubmission) ([]SubmissionRecord, error) {
	records := make([]SubmissionRecord, 0, len(raws))
	for i, raw := range raws {
		record, err := NormalizeSubmission(i, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ZipAttachments returns the `.zip` file names referenced from the photos
// group of a raw submission, in name order.
func ZipAttachments(raw RawSubmission) []string {
	var v struct {
		Photos map[string]any `json:"photos"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	var names []string
	for _, value := range v.Photos {
		if s, ok := value.(string); ok && strings.HasSuffix(s, ".zip") {
			names = append(names, s)
		}
	}
	sort.Strings(names)
	return names
}
