package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgbake/imgbake/internal/config"
	"github.com/imgbake/imgbake/internal/util/prerequisites"
)

// saveAndRestoreDoctorFactories saves and restores doctor factory functions.
func saveAndRestoreDoctorFactories(t *testing.T) {
	origCheck := checkPrerequisites
	origLoadConfig := loadConfig

	t.Cleanup(func() {
		checkPrerequisites = origCheck
		loadConfig = origLoadConfig
	})
}

func TestDoctor(t *testing.T) {
	saveAndRestoreDoctorFactories(t)

	var gotScheme string
	var gotSDK bool

	loadConfig = func(_ string) (*config.Config, error) {
		return &config.Config{Template: "t", InstallerObject: "i"}, nil
	}
	checkPrerequisites = func(scheme string, sdkFetch bool) *prerequisites.CheckResults {
		gotScheme = scheme
		gotSDK = sdkFetch
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: prerequisites.Tool{Name: "packer", Required: true}, Found: true, Path: "/bin/packer"},
			},
		}
	}

	err := Doctor(DoctorRequest{ReleasePath: "gs://releases/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gs", gotScheme)
	assert.False(t, gotSDK)
}

func TestDoctor_SDKFetchConfigured(t *testing.T) {
	saveAndRestoreDoctorFactories(t)

	var gotSDK bool
	loadConfig = func(_ string) (*config.Config, error) {
		return &config.Config{
			Template:        "t",
			InstallerObject: "i",
			S3:              &config.S3{UseSDK: true},
		}, nil
	}
	checkPrerequisites = func(_ string, sdkFetch bool) *prerequisites.CheckResults {
		gotSDK = sdkFetch
		return &prerequisites.CheckResults{}
	}

	require.NoError(t, Doctor(DoctorRequest{ReleasePath: "s3://releases/v1", JSON: true}))
	assert.True(t, gotSDK)
}

func TestDoctor_MissingRequiredToolIsAnError(t *testing.T) {
	saveAndRestoreDoctorFactories(t)

	missing := prerequisites.Tool{Name: "packer", Required: true, InstallURL: "https://example.com"}
	loadConfig = func(_ string) (*config.Config, error) {
		return &config.Config{Template: "t", InstallerObject: "i"}, nil
	}
	checkPrerequisites = func(_ string, _ bool) *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{{Tool: missing}},
			Missing: []prerequisites.Tool{missing},
		}
	}

	err := Doctor(DoctorRequest{JSON: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required tools")
}
