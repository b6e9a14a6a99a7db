package confdoc

import (
	"regexp"
	"strings"
)

// Sentinel comments delimit the blocks this editor owns. The assembler
// writes them and both line scanners key off them, so the exact strings
// are a contract: TestSentinelContract fails if the two sides drift.
const (
	SentinelDefaults = "# --- ccjk managed: defaults ---"
	SentinelServices = "# --- ccjk managed: services ---"
)

// Root-level directive keys.
const (
	keyDefaultModel = "model"
	keyProviderRef  = "provider_ref"
)

var (
	sectionHeaderRe = regexp.MustCompile(`^\s*\[([^\]]+)\]`)

	// Directive forms. The key must sit at the start of the line (after
	// indentation); a substring like `description = "provider_ref info"`
	// must not match.
	activeRefRe    = regexp.MustCompile(`^\s*provider_ref\s*=\s*"(.+)"`)
	commentedRefRe = regexp.MustCompile(`^\s*#\s*provider_ref\s*=\s*"(.+)"`)
	rootModelRe    = regexp.MustCompile(`^\s*model\s*=`)

	// A root-level dotted key like `providers.acme.name = "Acme"` defines
	// managed content without a section header; the tree parse models it,
	// so the line scanners must exclude it the same way they exclude
	// managed section bodies.
	managedDottedRe = regexp.MustCompile(`^\s*"?(?:providers|services)"?\s*\.`)

	fieldKeyRe = regexp.MustCompile(`^\s*([A-Za-z0-9_-]+)\s*=`)
)

// sectionPath extracts the dotted path from a section-header line,
// stripping quotes around individual key parts.
func sectionPath(line string) string {
	m := sectionHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	path := strings.TrimSpace(m[1])
	path = strings.ReplaceAll(path, `"`, "")
	path = strings.ReplaceAll(path, `'`, "")
	return path
}

// managedSection reports whether a section path belongs to the editor.
func managedSection(path string) bool {
	return path == "providers" || strings.HasPrefix(path, "providers.") ||
		path == "services" || strings.HasPrefix(path, "services.")
}

// scanDirective resolves the default-provider directive with a single
// line-oriented pass. The generic tree parser cannot be trusted here: the
// directive may be commented out, and a root key written after a section
// header gets misattributed to that section. A commented form wins
// outright over an active form anywhere else in the file, modeling "known
// but currently switched off".
func scanDirective(text string) (ref string, disabled bool, found bool) {
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		if m := commentedRefRe.FindStringSubmatch(line); m != nil {
			// Commented form wins outright, even over an active form
			// earlier in the file.
			return m[1], true, true
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == SentinelDefaults {
			// The managed defaults block always precedes its global keys,
			// so the sentinel re-opens root scope.
			inSection = false
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			inSection = true
			continue
		}
		if !inSection && !found {
			if m := activeRefRe.FindStringSubmatch(line); m != nil {
				ref, disabled, found = m[1], false, true
			}
		}
	}
	return ref, disabled, found
}

// collectUnmanaged gathers every line that is not part of a managed
// section or a managed root field, in original order. Blank lines are
// dropped; Render re-inserts spacing at fixed structural points so output
// spacing is deterministic.
//
// A line is excluded only when the other passes model it: commented
// directives anywhere (scanDirective captures them from anywhere), active
// directives and root `model` only in root scope, dotted `providers.`/
// `services.` keys only before the first header. An active directive
// inside a user section is the user's own key and must survive.
func collectUnmanaged(text string) []string {
	var out []string
	skipSection := false
	inSection := false
	rootKeys := true
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			path := sectionPath(line)
			skipSection = managedSection(path)
			inSection = true
			rootKeys = false
			if !skipSection {
				out = append(out, line)
			}
			continue
		}
		if skipSection {
			continue
		}
		if trimmed == SentinelDefaults {
			// Same reset as scanDirective: the managed defaults block
			// re-opens root scope for the directive.
			inSection = false
			continue
		}
		switch {
		case trimmed == "":
		case trimmed == SentinelServices:
		case commentedRefRe.MatchString(line):
		case !inSection && activeRefRe.MatchString(line):
		case rootKeys && rootModelRe.MatchString(line):
		case rootKeys && managedDottedRe.MatchString(line):
		default:
			out = append(out, line)
		}
	}
	return out
}

// sectionOrder returns the ids of [<prefix>.<id>] headers in the order
// they appear in the text, restricted to ids the tree parse produced.
// Tree-only ids (dotted keys the header scan cannot see) are appended in
// sorted order so the result is deterministic.
func sectionOrder(text, prefix string, known map[string]bool) []string {
	seen := make(map[string]bool, len(known))
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "[") {
			continue
		}
		path := sectionPath(line)
		id, ok := strings.CutPrefix(path, prefix+".")
		if !ok || id == "" {
			continue
		}
		if known[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range sortedKeys(known) {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// sectionFieldOrder returns the key names of a single [<prefix>.<id>]
// section body in source order. Used to keep unmodeled service fields in
// the order the user wrote them.
func sectionFieldOrder(text, prefix, id string) []string {
	want := prefix + "." + id
	inside := false
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inside = sectionPath(line) == want
			continue
		}
		if !inside || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := fieldKeyRe.FindStringSubmatch(line); m != nil {
			out = append(out, m[1])
		}
	}
	return out
}
