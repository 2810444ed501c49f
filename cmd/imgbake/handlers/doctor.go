package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/imgbake/imgbake/internal/installer"
	"github.com/imgbake/imgbake/internal/ui"
	"github.com/imgbake/imgbake/internal/util/prerequisites"
)

// DoctorRequest carries the doctor command flags.
type DoctorRequest struct {
	ReleasePath string
	ConfigPath  string
	JSON        bool
}

// toolStatus is the JSON shape of a single prerequisite check.
type toolStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
}

// checkPrerequisites is replaceable in tests.
var checkPrerequisites = prerequisites.CheckForBuild

// Doctor checks that the tools a build needs are installed and reports the
// result. Returns an error when a required tool is missing so the process
// exits non-zero.
func Doctor(req DoctorRequest) error {
	cfg, err := loadConfig(req.ConfigPath)
	if err != nil {
		return err
	}

	sdkFetch := cfg.S3 != nil && cfg.S3.UseSDK
	results := checkPrerequisites(installer.Scheme(req.ReleasePath), sdkFetch)

	if req.JSON {
		statuses := make([]toolStatus, 0, len(results.Results))
		for _, r := range results.Results {
			statuses = append(statuses, toolStatus{
				Name:     r.Tool.Name,
				Required: r.Tool.Required,
				Found:    r.Found,
				Path:     r.Path,
				Version:  r.Version,
			})
		}
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal doctor report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(ui.RenderDoctor(results, !ui.IsTerminal()))
	}

	return results.Error()
}
