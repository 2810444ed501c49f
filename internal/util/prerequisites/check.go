// Package prerequisites provides utilities for checking required client tools.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// BuildTools returns the tools needed for an image bake. packer is always
// required; the storage CLI depends on the release path scheme, and neither
// is required for the SDK fetch path. An empty scheme marks both storage
// CLIs optional, which is what doctor shows when no release path is given.
func BuildTools(scheme string, sdkFetch bool) []Tool {
	tools := []Tool{
		{
			Name:        "packer",
			Required:    true,
			Description: "Builds the machine image from the template",
			InstallURL:  "https://developer.hashicorp.com/packer/install",
		},
	}

	if !sdkFetch || scheme != "s3" {
		tools = append(tools,
			Tool{
				Name:        "gsutil",
				Required:    scheme == "gs",
				Description: "Fetches the installer from gs:// release paths",
				InstallURL:  "https://cloud.google.com/storage/docs/gsutil_install",
			},
			Tool{
				Name:        "aws",
				Required:    scheme == "s3" && !sdkFetch,
				Description: "Fetches the installer from s3:// release paths",
				InstallURL:  "https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
			})
	}

	return tools
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckForBuild checks the tools needed to bake an image from a release
// path with the given scheme.
func CheckForBuild(scheme string, sdkFetch bool) *CheckResults {
	return Check(BuildTools(scheme, sdkFetch))
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
