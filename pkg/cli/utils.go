package cli

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// formSelector picks the form for the single-form tools. --form wins over
// the form_id of the configuration file.
type formSelector struct {
	configPath string
	formID     string
}

func (f *formSelector) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the report YAML configuration file",
			Sources:     cli.EnvVars("ODKPULSE_CONFIG"),
			Destination: &f.configPath,
		},
		&cli.StringFlag{
			Name:        "form",
			Usage:       "ODK form ID",
			Sources:     cli.EnvVars("ODKPULSE_FORM_ID"),
			Destination: &f.formID,
		},
	}
}

func (f *formSelector) Resolve() (types.FormID, error) {
	if f.formID != "" {
		return types.FormID(f.formID), nil
	}
	if f.configPath != "" {
		cfg, err := config.LoadReportConfig(f.configPath)
		if err != nil {
			return "", err
		}
		if cfg.FormID != "" {
			return cfg.FormID, nil
		}
	}
	return "", goerr.New("--form or a configuration file with form_id is required", goerr.T(model.ErrTagConfig))
}
