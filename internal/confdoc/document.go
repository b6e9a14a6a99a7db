// Package confdoc implements the selective editor for the codex config
// file. It models a small set of managed entities (model providers, service
// definitions, two root-level directives) and passes every other line of
// the file through verbatim, so hand-edited content survives an arbitrary
// number of read-modify-write cycles.
//
// The package is purely textual: Parse takes file contents, Render returns
// file contents. Callers own all file I/O, backups and prompting.
package confdoc

import (
	"strings"
)

// Wire protocols a provider section can declare.
const (
	WireResponses = "responses"
	WireChat      = "chat"
)

// Provider is a managed [providers.<id>] section.
type Provider struct {
	ID           string
	Name         string
	BaseURL      string
	WireAPI      string
	AuthEnv      string
	RequiresAuth bool
	Model        string // optional; empty means unset
}

// ExtraField is a service key the editor does not model. Fields keep the
// order they appear in the source text.
type ExtraField struct {
	Key   string
	Value any
}

// Service is a managed [services.<id>] section describing a background
// process (MCP-style: command, args, env).
type Service struct {
	ID                string
	Command           string
	Args              []string
	Env               map[string]string
	StartupTimeoutSec int // optional; zero means unset
	Extra             []ExtraField
}

// Document is the in-memory form of one config file. Build it with Parse,
// mutate it, then Render it back to text. Documents are rebuilt from the
// on-disk text at the start of every operation; never reuse one across
// operations.
type Document struct {
	// DefaultModel is the root-level model directive. Empty means absent.
	DefaultModel string

	// DefaultProviderRef points at the provider currently selected as
	// default. DefaultProviderDisabled reports that the directive exists
	// in the file but is commented out.
	DefaultProviderRef      string
	DefaultProviderDisabled bool

	Providers []Provider
	Services  []Service

	// Unmanaged holds every line of the source that does not belong to a
	// managed section or directive, in original order, blank lines
	// removed. Render plays these back verbatim.
	Unmanaged []string
}

// IsManaged reports whether the document contains anything this editor
// owns: a provider, a service, or either root directive.
func (d *Document) IsManaged() bool {
	return len(d.Providers) > 0 || len(d.Services) > 0 ||
		d.DefaultModel != "" || d.DefaultProviderRef != ""
}

// FindProvider returns the provider with the given id, or nil.
func (d *Document) FindProvider(id string) *Provider {
	for i := range d.Providers {
		if d.Providers[i].ID == id {
			return &d.Providers[i]
		}
	}
	return nil
}

// FindService returns the service with the given id, or nil.
func (d *Document) FindService(id string) *Service {
	for i := range d.Services {
		if d.Services[i].ID == id {
			return &d.Services[i]
		}
	}
	return nil
}

// UpsertProvider replaces the provider with the same id in place, or
// appends it. Insertion order of existing providers is preserved.
func (d *Document) UpsertProvider(p Provider) {
	for i := range d.Providers {
		if d.Providers[i].ID == p.ID {
			d.Providers[i] = p
			return
		}
	}
	d.Providers = append(d.Providers, p)
}

// RemoveProvider deletes the provider with the given id. It reports
// whether anything was removed. Removing the provider the default
// directive points at clears the directive.
func (d *Document) RemoveProvider(id string) bool {
	for i := range d.Providers {
		if d.Providers[i].ID == id {
			d.Providers = append(d.Providers[:i], d.Providers[i+1:]...)
			if d.DefaultProviderRef == id {
				d.DefaultProviderRef = ""
				d.DefaultProviderDisabled = false
			}
			return true
		}
	}
	return false
}

// SetDefaultProvider points the default-provider directive at id and
// makes it active.
func (d *Document) SetDefaultProvider(id string) {
	d.DefaultProviderRef = id
	d.DefaultProviderDisabled = false
}

// DisableDefaultProvider keeps the directive in the file but comments it
// out ("known but inactive"). No-op when no directive is set.
func (d *Document) DisableDefaultProvider() {
	if d.DefaultProviderRef != "" {
		d.DefaultProviderDisabled = true
	}
}

// EnableDefaultProvider reactivates a commented-out directive.
func (d *Document) EnableDefaultProvider() {
	d.DefaultProviderDisabled = false
}

// SetDefaultModel sets or clears the root model directive.
func (d *Document) SetDefaultModel(model string) {
	d.DefaultModel = model
}

// UpsertService replaces the service with the same id in place, or
// appends it.
func (d *Document) UpsertService(s Service) {
	for i := range d.Services {
		if d.Services[i].ID == s.ID {
			d.Services[i] = s
			return
		}
	}
	d.Services = append(d.Services, s)
}

// RemoveService deletes the service with the given id and reports whether
// anything was removed.
func (d *Document) RemoveService(id string) bool {
	for i := range d.Services {
		if d.Services[i].ID == id {
			d.Services = append(d.Services[:i], d.Services[i+1:]...)
			return true
		}
	}
	return false
}

// NormalizeID derives a section id from a free-text display name:
// lowercase, runs of anything outside [a-z0-9] collapse to a single
// hyphen, leading and trailing hyphens stripped. Two names normalizing to
// the same id collide; callers resolve collisions last-write-wins.
func NormalizeID(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
