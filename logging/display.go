// Package logging prints driver diagnostics to the console.
package logging

import (
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints an error to the console. Errors holding
// several lines (such as an emit.ErrorSet) are printed one line at a time
// under the same tag.
func PrintErrorMessage(tag string, err error) {
	for _, line := range Lines(err) {
		ErrorStyleBG.Print(tag)
		ErrorColorFG.Println(" " + line)
	}
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// PrintSuccessMessage prints the closing message of a successful run
func PrintSuccessMessage(tag, msg string) {
	SuccessStyleBG.Print(tag)
	SuccessColorFG.Println(" " + msg)
}

// Lines splits the error text into its non-empty lines.
func Lines(err error) []string {
	if err == nil {
		return nil
	}

	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); len(line) > 0 {
			out = append(out, line)
		}
	}
	return out
}
