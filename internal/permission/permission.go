// Package permission defines the preset rule catalogs ccjk can install
// into the claude tool's settings, and pattern checks over them.
package permission

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Permission is a rule decision.
type Permission string

const (
	PermissionAllow Permission = "allow"
	PermissionDeny  Permission = "deny"
	PermissionAsk   Permission = "ask"
)

// Preset is a named permission catalog.
type Preset struct {
	Name        string
	Description string

	// Bash maps command patterns to decisions. Patterns use shell-style
	// globs; "*" is the catch-all.
	Bash map[string]Permission

	// Paths maps file glob patterns (doublestar syntax) to decisions for
	// write/edit operations.
	Paths map[string]Permission
}

// Presets returns the built-in catalogs in a fixed order.
func Presets() []Preset {
	return []Preset{
		{
			Name:        "safe",
			Description: "read-only helpers allowed, everything else asks",
			Bash: map[string]Permission{
				"git status*": PermissionAllow,
				"git diff*":   PermissionAllow,
				"git log*":    PermissionAllow,
				"ls*":         PermissionAllow,
				"*":           PermissionAsk,
			},
			Paths: map[string]Permission{
				"**": PermissionAsk,
			},
		},
		{
			Name:        "standard",
			Description: "common development commands allowed, destructive ones ask",
			Bash: map[string]Permission{
				"git *":     PermissionAllow,
				"go *":      PermissionAllow,
				"npm *":     PermissionAllow,
				"make *":    PermissionAllow,
				"rm -rf *":  PermissionDeny,
				"sudo *":    PermissionAsk,
				"*":         PermissionAsk,
			},
			Paths: map[string]Permission{
				"**/.env":       PermissionDeny,
				"**/.git/**":    PermissionAsk,
				"**":            PermissionAllow,
			},
		},
		{
			Name:        "permissive",
			Description: "everything allowed except credential files",
			Bash: map[string]Permission{
				"*": PermissionAllow,
			},
			Paths: map[string]Permission{
				"**/.env":        PermissionDeny,
				"**/id_rsa*":     PermissionDeny,
				"**":             PermissionAllow,
			},
		},
	}
}

// Find returns the preset with the given name, or nil.
func Find(name string) *Preset {
	for _, p := range Presets() {
		if p.Name == name {
			preset := p
			return &preset
		}
	}
	return nil
}

// CheckBash resolves a command against the preset's bash rules. Specific
// patterns win over the "*" catch-all; among specific patterns the
// longest match wins.
func (p *Preset) CheckBash(command string) Permission {
	best := ""
	decision := PermissionAsk
	for pattern, perm := range p.Bash {
		if pattern == "*" {
			continue
		}
		if matchCommand(pattern, command) && len(pattern) > len(best) {
			best = pattern
			decision = perm
		}
	}
	if best != "" {
		return decision
	}
	if perm, ok := p.Bash["*"]; ok {
		return perm
	}
	return PermissionAsk
}

// CheckPath resolves a file path against the preset's path rules. The
// most specific (longest) matching pattern wins; "**" is the fallback.
func (p *Preset) CheckPath(path string) Permission {
	best := ""
	decision := PermissionAsk
	for pattern, perm := range p.Paths {
		if pattern == "**" {
			continue
		}
		ok, err := doublestar.Match(pattern, path)
		if err != nil || !ok {
			continue
		}
		if len(pattern) > len(best) {
			best = pattern
			decision = perm
		}
	}
	if best != "" {
		return decision
	}
	if perm, ok := p.Paths["**"]; ok {
		return perm
	}
	return PermissionAsk
}

// AllowRules returns the preset's allow-listed patterns in sorted order,
// ready to be written into a tool settings file.
func (p *Preset) AllowRules() []string {
	var rules []string
	for pattern, perm := range p.Bash {
		if perm == PermissionAllow {
			rules = append(rules, "Bash("+pattern+")")
		}
	}
	sort.Strings(rules)
	return rules
}

// DenyRules returns the preset's deny-listed patterns in sorted order.
func (p *Preset) DenyRules() []string {
	var rules []string
	for pattern, perm := range p.Bash {
		if perm == PermissionDeny {
			rules = append(rules, "Bash("+pattern+")")
		}
	}
	for pattern, perm := range p.Paths {
		if perm == PermissionDeny {
			rules = append(rules, "Edit("+pattern+")")
		}
	}
	sort.Strings(rules)
	return rules
}

// matchCommand does shell-style prefix matching: a trailing "*" matches
// any suffix, otherwise the command must match exactly.
func matchCommand(pattern, command string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(command, strings.TrimRight(prefix, " ")) ||
			strings.HasPrefix(command, prefix)
	}
	return command == pattern
}
