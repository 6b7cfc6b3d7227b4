package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// ReportConfig is the report definition loaded from the YAML config file
type ReportConfig struct {
	FormID            types.FormID    `yaml:"form_id"`
	AllowedSubmitters []string        `yaml:"allowed_submitters"`
	Sort              types.SortOrder `yaml:"sort,omitempty"`
	Subject           string          `yaml:"subject,omitempty"`
	SheetURL          string          `yaml:"sheet_url,omitempty"`
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if c.FormID == "" {
		return goerr.New("form_id is required", goerr.T(ErrTagConfig))
	}
	if c.Sort != "" && !c.Sort.IsValid() {
		return goerr.New("invalid sort order",
			goerr.T(ErrTagConfig),
			goerr.V("sort", c.Sort))
	}

	seen := make(map[string]bool)
	for i, name := range c.AllowedSubmitters {
		if name == "" {
			return goerr.New("empty submitter name",
				goerr.T(ErrTagConfig),
				goerr.V("index", i))
		}
		if seen[name] {
			return goerr.New("duplicate submitter name",
				goerr.T(ErrTagConfig),
				goerr.V("name", name))
		}
		seen[name] = true
	}

	return nil
}

// AllowList returns the configured submitters as an AllowList
func (c *ReportConfig) AllowList() AllowList {
	return NewAllowList(c.AllowedSubmitters...)
}

// SortOrder returns the configured order, descending by default
func (c *ReportConfig) SortOrder() types.SortOrder {
	if c.Sort == "" {
		return types.SortDescending
	}
	return c.Sort
}
