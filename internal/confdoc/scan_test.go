package confdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Directive Resolution Tests ---

func TestDirectiveActive(t *testing.T) {
	doc := Parse(`provider_ref = "acme"` + "\n")

	assert.Equal(t, "acme", doc.DefaultProviderRef)
	assert.False(t, doc.DefaultProviderDisabled)
}

func TestDirectiveCommented(t *testing.T) {
	doc := Parse(`# provider_ref = "acme"` + "\n")

	assert.Equal(t, "acme", doc.DefaultProviderRef)
	assert.True(t, doc.DefaultProviderDisabled)
}

func TestDirectiveCommentedWinsOverActive(t *testing.T) {
	// Commented form takes precedence regardless of relative order.
	both := []string{
		"provider_ref = \"zeta\"\n# provider_ref = \"acme\"\n",
		"# provider_ref = \"acme\"\nprovider_ref = \"zeta\"\n",
	}
	for _, text := range both {
		doc := Parse(text)
		assert.Equal(t, "acme", doc.DefaultProviderRef, "input: %q", text)
		assert.True(t, doc.DefaultProviderDisabled, "input: %q", text)
	}
}

func TestDirectiveInsideSectionIgnored(t *testing.T) {
	// A key below a section header belongs to that section, not the root.
	text := `[alpha]
provider_ref = "not-root"
`
	doc := Parse(text)

	assert.Empty(t, doc.DefaultProviderRef)
}

func TestDirectiveKeyInsideSectionSurvives(t *testing.T) {
	// `provider_ref` below a user section header is the user's own key:
	// not resolved as the root directive, but never dropped either.
	text := "[alpha]\nprovider_ref = \"mine\"\nx = 1\n"
	doc := Parse(text)

	require.Empty(t, doc.DefaultProviderRef)
	assert.Contains(t, doc.Unmanaged, `provider_ref = "mine"`)

	out := doc.Render()
	assert.Contains(t, out, `provider_ref = "mine"`)
	assert.Equal(t, out, Parse(out).Render())
}

func TestDirectiveAfterSentinelFound(t *testing.T) {
	// The sentinel re-opens root scope, so a directive written after user
	// sections is still resolved.
	text := "[alpha]\nx = 1\n" + SentinelDefaults + "\n" + `provider_ref = "acme"` + "\n"
	doc := Parse(text)

	assert.Equal(t, "acme", doc.DefaultProviderRef)
	assert.False(t, doc.DefaultProviderDisabled)
}

// --- Sentinel Contract Tests ---

// The assembler writes the sentinels and the scanners key off them. If
// either side drifts, documents written by Render stop resolving their
// own directives; this test pins the contract.
func TestSentinelContract(t *testing.T) {
	doc := &Document{
		DefaultModel:       "gpt-x",
		DefaultProviderRef: "acme",
		Providers: []Provider{{
			ID: "acme", Name: "Acme", BaseURL: "https://a.example",
			WireAPI: WireResponses, AuthEnv: "A", RequiresAuth: true,
		}},
		Services: []Service{{ID: "tool", Command: "tool"}},
	}

	out := doc.Render()
	require.True(t, strings.Contains(out, SentinelDefaults))
	require.True(t, strings.Contains(out, SentinelServices))

	reparsed := Parse(out)
	assert.Equal(t, "acme", reparsed.DefaultProviderRef)
	assert.Equal(t, "gpt-x", reparsed.DefaultModel)

	// Neither sentinel may leak into passthrough content.
	assert.NotContains(t, reparsed.Unmanaged, SentinelDefaults)
	assert.NotContains(t, reparsed.Unmanaged, SentinelServices)
}
