package confdoc

import (
	"regexp"
	"strings"
)

// The provider credential field was renamed from env_key to auth_env.
// Migrate rewrites old documents; NeedsMigration gates the rewrite.
var (
	legacyFieldRe  = regexp.MustCompile(`^(\s*)env_key(\s*=.*)$`)
	currentFieldRe = regexp.MustCompile(`^\s*auth_env\s*=`)
)

// NeedsMigration reports whether the text still declares the legacy
// credential field anywhere.
func NeedsMigration(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if legacyFieldRe.MatchString(line) {
			return true
		}
	}
	return false
}

// Migrate renames every legacy env_key field to auth_env, touching
// nothing else: indentation and the value side of the line are preserved,
// unrelated lines pass through byte-identical. When a section declares
// both the legacy and the current field, the legacy line is deleted so
// the result has no duplicate keys.
//
// Migrate is idempotent: NeedsMigration on its output is always false,
// and running it twice equals running it once.
func Migrate(text string) string {
	if !NeedsMigration(text) {
		return text
	}

	// Pass 1: sections that already declare the current field name.
	hasCurrent := make(map[string]bool)
	section := ""
	for _, line := range strings.Split(text, "\n") {
		if sectionHeaderRe.MatchString(line) {
			section = sectionPath(line)
			continue
		}
		if currentFieldRe.MatchString(line) {
			hasCurrent[section] = true
		}
	}

	// Pass 2: rewrite legacy lines in place, drop the ones that would
	// collide.
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	section = ""
	for _, line := range lines {
		if sectionHeaderRe.MatchString(line) {
			section = sectionPath(line)
			out = append(out, line)
			continue
		}
		if m := legacyFieldRe.FindStringSubmatch(line); m != nil {
			if hasCurrent[section] {
				continue
			}
			out = append(out, m[1]+fieldAuthEnv+m[2])
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
