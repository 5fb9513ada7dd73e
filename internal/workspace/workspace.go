// Package workspace derives the content-addressed workspace name for a view
// file and the directory layout generated inside it.
package workspace

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Placeholder is used when a file stem has no usable characters
const Placeholder = "Playground"

// Name derives the workspace directory name for viewFile and viewType.
// Same inputs always produce the same name.
func Name(viewFile, viewType string) string {
	stem := strings.TrimSuffix(filepath.Base(viewFile), filepath.Ext(viewFile))
	return Sanitize(stem) + "-" + StableHash(viewFile+":"+viewType)
}

// Sanitize keeps letters, digits, '_' and '-', turning spaces into '_'
func Sanitize(component string) string {
	var b strings.Builder

	for _, r := range strings.ReplaceAll(component, " ", "_") {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return Placeholder
	}

	return b.String()
}
