//go:build windows

package fileresolver

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

// HandlerExecutable resolves the executable registered to open files with
// the given extension (e.g. ".docx"), walking the same precedence order
// Explorer uses: per-user choice under UserChoice, then the machine-wide
// ProgID association, then that ProgID's shell\open\command verb (spec
// §4.3.1 Tier 2). It returns "" if no handler can be resolved.
func HandlerExecutable(extension string) string {
	ext := strings.ToLower(extension)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if progID := userChoiceProgID(ext); progID != "" {
		if exe := commandExecutable(progID); exe != "" {
			return exe
		}
	}

	if progID := machineProgID(ext); progID != "" {
		if exe := commandExecutable(progID); exe != "" {
			return exe
		}
	}

	return ""
}

func userChoiceProgID(ext string) string {
	keyPath := `Software\Microsoft\Windows\CurrentVersion\Explorer\FileExts\` + ext + `\UserChoice`
	k, err := registry.OpenKey(registry.CURRENT_USER, keyPath, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()
	v, _, err := k.GetStringValue("ProgId")
	if err != nil {
		return ""
	}
	return v
}

func machineProgID(ext string) string {
	k, err := registry.OpenKey(registry.CLASSES_ROOT, ext, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()
	v, _, err := k.GetStringValue("")
	if err != nil || v == "" {
		return ""
	}
	return v
}

func commandExecutable(progID string) string {
	keyPath := progID + `\shell\open\command`
	k, err := registry.OpenKey(registry.CLASSES_ROOT, keyPath, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()
	v, _, err := k.GetStringValue("")
	if err != nil || v == "" {
		return ""
	}
	return parseCommandExecutable(v)
}
