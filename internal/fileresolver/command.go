package fileresolver

import (
	"os"
	"strings"
)

// parseCommandExecutable extracts the executable token from a
// shell\open\command registry value, which is either a quoted path
// ("C:\...\x.exe" "%1") or an unquoted first whitespace-delimited token,
// expands any environment variables it contains, and lowercases the
// result (spec §4.3.1 Tier 2).
func parseCommandExecutable(command string) string {
	command = strings.TrimSpace(command)
	var token string
	if strings.HasPrefix(command, `"`) {
		rest := command[1:]
		if idx := strings.Index(rest, `"`); idx >= 0 {
			token = rest[:idx]
		} else {
			token = rest
		}
	} else {
		if idx := strings.IndexAny(command, " \t"); idx >= 0 {
			token = command[:idx]
		} else {
			token = command
		}
	}
	token = os.Expand(token, os.Getenv)
	return strings.ToLower(token)
}
