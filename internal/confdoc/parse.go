package confdoc

import (
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Known field names of the managed section shapes.
const (
	fieldName         = "name"
	fieldBaseURL      = "base_url"
	fieldWireAPI      = "wire_api"
	fieldAuthEnv      = "auth_env"
	fieldRequiresAuth = "requires_auth"
	fieldModel        = "model"

	fieldCommand        = "command"
	fieldArgs           = "args"
	fieldEnv            = "env"
	fieldStartupTimeout = "startup_timeout_sec"
)

var knownServiceFields = map[string]bool{
	fieldCommand:        true,
	fieldArgs:           true,
	fieldEnv:            true,
	fieldStartupTimeout: true,
}

// Parse builds a Document from raw file contents. It never fails: when
// the text cannot be parsed as TOML at all, the whole document is treated
// as unmanaged content and comes back with IsManaged() == false.
//
// Parsing runs in three independent passes over the same text: a generic
// tree parse feeding the entity extraction, a line scan resolving the
// default-provider directive, and a line scan collecting unmanaged
// content.
func Parse(text string) *Document {
	doc := &Document{}

	var tree map[string]any
	if err := toml.Unmarshal([]byte(text), &tree); err != nil {
		doc.Unmanaged = collectUnmanaged(text)
		return doc
	}

	extractEntities(doc, tree, text)

	if ref, disabled, found := scanDirective(text); found {
		doc.DefaultProviderRef = ref
		doc.DefaultProviderDisabled = disabled
	} else if s, ok := tree[keyProviderRef].(string); ok {
		// Tree fallback: the scanner found nothing, but the generic parse
		// may still have the key (e.g. unusual quoting).
		doc.DefaultProviderRef = s
	}

	doc.Unmanaged = collectUnmanaged(text)
	return doc
}

func extractEntities(doc *Document, tree map[string]any, text string) {
	if s, ok := tree[keyDefaultModel].(string); ok {
		doc.DefaultModel = s
	}

	if provs, ok := tree["providers"].(map[string]any); ok {
		for _, id := range sectionOrder(text, "providers", keySet(provs)) {
			body, ok := provs[id].(map[string]any)
			if !ok {
				continue
			}
			doc.Providers = append(doc.Providers, extractProvider(id, body))
		}
	}

	if svcs, ok := tree["services"].(map[string]any); ok {
		for _, id := range sectionOrder(text, "services", keySet(svcs)) {
			body, ok := svcs[id].(map[string]any)
			if !ok {
				continue
			}
			doc.Services = append(doc.Services, extractService(id, body, text))
		}
	}
}

func extractProvider(id string, body map[string]any) Provider {
	p := Provider{
		ID:           id,
		WireAPI:      WireResponses,
		RequiresAuth: true,
	}
	if s, ok := body[fieldName].(string); ok {
		p.Name = s
	}
	if s, ok := body[fieldBaseURL].(string); ok {
		p.BaseURL = s
	}
	if s, ok := body[fieldWireAPI].(string); ok && s != "" {
		p.WireAPI = s
	}
	if s, ok := body[fieldAuthEnv].(string); ok {
		p.AuthEnv = s
	}
	if b, ok := body[fieldRequiresAuth].(bool); ok {
		p.RequiresAuth = b
	}
	if s, ok := body[fieldModel].(string); ok {
		p.Model = s
	}
	return p
}

func extractService(id string, body map[string]any, text string) Service {
	s := Service{ID: id}
	if cmd, ok := body[fieldCommand].(string); ok {
		s.Command = cmd
	}
	if raw, ok := body[fieldArgs].([]any); ok {
		s.Args = make([]string, 0, len(raw))
		for _, v := range raw {
			if str, ok := v.(string); ok {
				s.Args = append(s.Args, str)
			}
		}
	}
	if raw, ok := body[fieldEnv].(map[string]any); ok && len(raw) > 0 {
		s.Env = make(map[string]string, len(raw))
		for k, v := range raw {
			if str, ok := v.(string); ok {
				s.Env[k] = str
			}
		}
		if len(s.Env) == 0 {
			s.Env = nil
		}
	}
	s.StartupTimeoutSec = intValue(body[fieldStartupTimeout])

	// Unmodeled keys keep their native shape and their source order.
	// Extra stays nil when there are none, so re-serialization does not
	// fabricate structure.
	inBody := keySet(body)
	seen := make(map[string]bool, len(body))
	for _, key := range sectionFieldOrder(text, "services", id) {
		if knownServiceFields[key] || seen[key] || !inBody[key] {
			continue
		}
		seen[key] = true
		s.Extra = append(s.Extra, ExtraField{Key: key, Value: body[key]})
	}
	for _, key := range sortedKeys(inBody) {
		if knownServiceFields[key] || seen[key] {
			continue
		}
		s.Extra = append(s.Extra, ExtraField{Key: key, Value: body[key]})
	}
	return s
}

func intValue(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func keySet(m map[string]any) map[string]bool {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
