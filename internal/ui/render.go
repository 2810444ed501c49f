package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/imgbake/imgbake/internal/util/prerequisites"
)

// IsTerminal reports whether stdout is a TTY. Styled output is only used on
// terminals; pipes get plain text.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RenderDoctor formats a prerequisite check report. With plain set, no
// styling is applied.
func RenderDoctor(results *prerequisites.CheckResults, plain bool) string {
	var b strings.Builder

	b.WriteString(styled(sectionStyle, "Prerequisites", plain))
	b.WriteString("\n")

	for _, r := range results.Results {
		mark := checkMark
		style := okStyle
		detail := r.Path
		switch {
		case r.Found && r.Version != "":
			detail = fmt.Sprintf("%s (%s)", r.Path, r.Version)
		case !r.Found && r.Tool.Required:
			mark = crossMark
			style = failStyle
			detail = "missing, install from " + r.Tool.InstallURL
		case !r.Found:
			mark = skipMark
			style = dimStyle
			detail = "not found (optional)"
		}
		b.WriteString(fmt.Sprintf("  %s %-8s %s\n",
			styled(style, mark, plain), r.Tool.Name, styled(dimStyle, detail, plain)))
	}

	if results.HasErrors() {
		b.WriteString(styled(failStyle, "\nSome required tools are missing.\n", plain))
	} else {
		b.WriteString(styled(okStyle, "\nAll required tools are available.\n", plain))
	}
	return b.String()
}

// RenderNextSteps formats the follow-up instructions printed after a
// successful build.
func RenderNextSteps(text string, plain bool) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(styled(sectionStyle, "Next steps", plain))
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func styled(style interface{ Render(...string) string }, s string, plain bool) string {
	if plain {
		return s
	}
	return style.Render(s)
}
