package confdoc

import (
	"sort"
	"strconv"
	"strings"
)

// Render serializes the document back to file text. The output structure
// is fixed: managed defaults block, unmanaged content, provider sections,
// service sections, exactly one trailing newline and never more than one
// blank line between blocks.
//
// Render's output is a fixed point of the parse/render cycle: rendering,
// re-parsing and rendering again is byte-identical. The user's original
// file is reformatted on first touch and stable afterwards.
func (d *Document) Render() string {
	var blocks []string

	if d.DefaultModel != "" || d.DefaultProviderRef != "" || len(d.Providers) > 0 {
		lines := []string{SentinelDefaults}
		if d.DefaultModel != "" {
			lines = append(lines, keyDefaultModel+" = "+formatString(d.DefaultModel))
		}
		if d.DefaultProviderRef != "" {
			directive := keyProviderRef + " = " + formatString(d.DefaultProviderRef)
			if d.DefaultProviderDisabled {
				directive = "# " + directive
			}
			lines = append(lines, directive)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	blocks = append(blocks, unmanagedBlocks(d.Unmanaged)...)

	for i := range d.Providers {
		blocks = append(blocks, renderProvider(&d.Providers[i]))
	}

	for i := range d.Services {
		block := renderService(&d.Services[i])
		if i == 0 {
			block = SentinelServices + "\n" + block
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// unmanagedBlocks plays collected lines back verbatim, starting a new
// block at every section header. Lines that would re-introduce a managed
// header or field are filtered out defensively even if they slipped into
// the collected set.
func unmanagedBlocks(lines []string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	inSection := false
	rootKeys := true
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "["):
			if managedSection(sectionPath(line)) {
				continue
			}
			inSection = true
			rootKeys = false
			flush()
			cur = append(cur, line)
		case trimmed == "":
		case trimmed == SentinelDefaults, trimmed == SentinelServices:
		case commentedRefRe.MatchString(line):
		case !inSection && activeRefRe.MatchString(line):
		case rootKeys && rootModelRe.MatchString(line):
		case rootKeys && managedDottedRe.MatchString(line):
		default:
			cur = append(cur, line)
		}
	}
	flush()
	return blocks
}

func renderProvider(p *Provider) string {
	lines := []string{
		"[providers." + sectionKey(p.ID) + "]",
		fieldName + " = " + formatString(p.Name),
		fieldBaseURL + " = " + formatString(p.BaseURL),
		fieldWireAPI + " = " + formatString(p.WireAPI),
		fieldAuthEnv + " = " + formatString(p.AuthEnv),
		fieldRequiresAuth + " = " + strconv.FormatBool(p.RequiresAuth),
	}
	if p.Model != "" {
		lines = append(lines, fieldModel+" = "+formatString(p.Model))
	}
	return strings.Join(lines, "\n")
}

func renderService(s *Service) string {
	lines := []string{
		"[services." + sectionKey(s.ID) + "]",
		fieldCommand + " = " + formatString(s.Command),
	}
	if s.Args != nil {
		parts := make([]string, len(s.Args))
		for i, a := range s.Args {
			parts[i] = formatString(a)
		}
		lines = append(lines, fieldArgs+" = ["+strings.Join(parts, ", ")+"]")
	}
	if len(s.Env) > 0 {
		keys := make([]string, 0, len(s.Env))
		for k := range s.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = bareKey(k) + " = " + formatEnvValue(s.Env[k])
		}
		lines = append(lines, fieldEnv+" = {"+strings.Join(parts, ", ")+"}")
	}
	if s.StartupTimeoutSec > 0 {
		lines = append(lines, fieldStartupTimeout+" = "+strconv.Itoa(s.StartupTimeoutSec))
	}
	for _, extra := range s.Extra {
		if extra.Value == nil {
			continue
		}
		lines = append(lines, bareKey(extra.Key)+" = "+formatValue(extra.Value))
	}
	return strings.Join(lines, "\n")
}

// sectionKey quotes a section id that cannot be written as a bare key.
func sectionKey(id string) string {
	return bareKey(id)
}
