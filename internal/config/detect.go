package config

import (
	"errors"
	"regexp"
	"strings"
)

// ViewKind is how the root type is hosted in the generated project
type ViewKind int

const (
	// GView is a declarative view wrapped in a generated root node
	GView ViewKind = iota
	// GodotClass is an @Godot class registered and used directly
	GodotClass
)

func (k ViewKind) String() string {
	switch k {
	case GView:
		return "gview"
	case GodotClass:
		return "godot-class"
	default:
		return "unknown"
	}
}

// ErrViewNotFound is returned when the source holds neither a GView nor an @Godot class
var ErrViewNotFound = errors.New("unable to detect a GView or @Godot class. Pass --root <TypeName> explicitly")

// Patterns take the type name in place of %s
const (
	modifiers    = `(?:(?:public|internal|fileprivate|open|final)\s+)*`
	gviewPattern = modifiers + `(?:struct|class)\s+(%s)\s*:\s*[^\{]*\bG?View\b`
	godotPattern = `@Godot\s*(?:\([^)]*\))?\s*` + modifiers + `class\s+(%s)`
	identifier   = `[A-Za-z_][A-Za-z0-9_]*`
)

var (
	gviewRegex = regexp.MustCompile(expand(gviewPattern, identifier))
	godotRegex = regexp.MustCompile(expand(godotPattern, identifier))
)

// DetectViewType finds the first GView in source, falling back to the first @Godot class
func DetectViewType(source string) (string, ViewKind, error) {
	if m := gviewRegex.FindStringSubmatch(source); m != nil {
		return m[1], GView, nil
	}

	if m := godotRegex.FindStringSubmatch(source); m != nil {
		return m[1], GodotClass, nil
	}

	return "", GView, ErrViewNotFound
}

// DetectKind reports how typeName is declared in source, if it is declared
// as a GView or an @Godot class at all
func DetectKind(typeName, source string) (ViewKind, bool) {
	name := regexp.QuoteMeta(typeName)

	if regexp.MustCompile(expand(gviewPattern, name)).MatchString(source) {
		return GView, true
	}

	if regexp.MustCompile(expand(godotPattern, name) + `\b`).MatchString(source) {
		return GodotClass, true
	}

	return GView, false
}

// ResolveView picks the root type and kind. Without root the detected type
// is used and detection failure is an error. With root, its own declaration
// decides the kind; otherwise the kind of the detected type is used, and
// GView when nothing is detected.
func ResolveView(source, root string) (string, ViewKind, error) {
	detected, detectedKind, err := DetectViewType(source)

	if root == "" {
		if err != nil {
			return "", GView, err
		}

		return detected, detectedKind, nil
	}

	if kind, ok := DetectKind(root, source); ok {
		return root, kind, nil
	}

	if err == nil {
		return root, detectedKind, nil
	}

	return root, GView, nil
}

func expand(pattern, name string) string {
	return strings.ReplaceAll(pattern, "%s", name)
}
