package model

import "github.com/secmon-lab/odkpulse/pkg/domain/types"

// SampledFile is one attachment saved by the samples command
type SampledFile struct {
	InstanceID types.InstanceID
	Filename   string
	Path       string
}

// SampleResult summarizes an attachment sampling run
type SampleResult struct {
	Sampled []types.InstanceID
	Saved   []SampledFile
	Failed  int
}
