package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, defs map[string]Definition) *Renderer {
	t.Helper()
	r, err := NewRenderer(defs)
	require.NoError(t, err)
	return r
}

func TestRenderer_ExpandPlainText(t *testing.T) {
	r := newTestRenderer(t, nil)
	out, err := r.Expand("no shortcodes here", KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "no shortcodes here", out)
}

func TestRenderer_ExpandSelfClosing(t *testing.T) {
	r := newTestRenderer(t, map[string]Definition{
		"hello": {Name: "hello", Kind: KindMarkdown, Source: "Hello, {{ .name }}!"},
	})

	out, err := r.Expand(`Say: {{ hello(name="World") }}`, KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "Say: Hello, World!", out)
}

func TestRenderer_ExpandBody(t *testing.T) {
	r := newTestRenderer(t, map[string]Definition{
		"quote": {Name: "quote", Kind: KindMarkdown, Source: "> {{ .body }} ({{ .by }})"},
	})

	out, err := r.Expand(`{% quote(by="me") %}Words{% end %}`, KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "> Words (me)", out)
}

func TestRenderer_ExpandEmbedded(t *testing.T) {
	// The embedded directive is opaque to the outer scan and only resolved
	// when the body goes through its own pass.
	r := newTestRenderer(t, map[string]Definition{
		"outer": {Name: "outer", Kind: KindMarkdown, Source: "<{{ .body }}>"},
		"inner": {Name: "inner", Kind: KindMarkdown, Source: "*"},
	})

	out, err := r.Expand("{% outer() %}a {{ inner() }} b{% end %}", KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "<a * b>", out)
}

func TestRenderer_ExpandMultipleSplices(t *testing.T) {
	// Substitutions of different widths must not corrupt later spans.
	r := newTestRenderer(t, map[string]Definition{
		"long":  {Name: "long", Kind: KindMarkdown, Source: "0123456789012345678901234567890"},
		"short": {Name: "short", Kind: KindMarkdown, Source: "."},
	})

	out, err := r.Expand("A{{ long() }}B{{ short() }}C{{ long() }}D", KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "A0123456789012345678901234567890B.C0123456789012345678901234567890D", out)
}

func TestRenderer_ExpandUndefined(t *testing.T) {
	r := newTestRenderer(t, nil)
	_, err := r.Expand("{{ nope() }}", KindMarkdown)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefined)
	assert.Contains(t, err.Error(), "nope")
}

func TestRenderer_ExpandOtherKindIsReserialized(t *testing.T) {
	// An HTML-kind definition must pass through the Markdown pass intact
	// so the later HTML pass can expand it.
	r := newTestRenderer(t, map[string]Definition{
		"widget": {Name: "widget", Kind: KindHTML, Source: "<div>{{ .n }}</div>"},
	})

	out, err := r.Expand(`before {{ widget(n=3) }} after`, KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "before {{ widget(n=3) }} after", out)

	out, err = r.Expand(out, KindHTML)
	require.NoError(t, err)
	assert.Equal(t, "before <div>3</div> after", out)
}

func TestRenderer_ExpandPassDefersOtherKind(t *testing.T) {
	// An HTML-kind directive leaves only its marker in the Markdown pass
	// output; the directive itself, quoted arguments intact, comes back as
	// a deferred entry for the caller to splice after conversion.
	r := newTestRenderer(t, map[string]Definition{
		"player": {Name: "player", Kind: KindHTML, Source: `<video src="{{ .src }}"></video>`},
	})

	out, deferred, err := r.ExpandPass(`before {{ player(src="a.mp4") }} after`, KindMarkdown)
	require.NoError(t, err)
	require.Len(t, deferred, 1)
	assert.Equal(t, "before "+deferred[0].Marker+" after", out)
	assert.Equal(t, "player", deferred[0].Directive.Name)

	rendered, err := r.RenderDeferred(deferred[0])
	require.NoError(t, err)
	assert.Equal(t, `<video src="a.mp4"></video>`, rendered)
}

func TestRenderer_ExpandPassMarkersAreUnique(t *testing.T) {
	r := newTestRenderer(t, map[string]Definition{
		"a": {Name: "a", Kind: KindHTML, Source: "A"},
		"b": {Name: "b", Kind: KindHTML, Source: "B"},
	})

	out, deferred, err := r.ExpandPass("{{ a() }} {{ b() }} {{ a() }}", KindMarkdown)
	require.NoError(t, err)
	require.Len(t, deferred, 3)

	seen := make(map[string]bool)
	for _, d := range deferred {
		assert.False(t, seen[d.Marker])
		seen[d.Marker] = true
		assert.Contains(t, out, d.Marker)
	}
	assert.Equal(t, deferred[0].Marker+" "+deferred[1].Marker+" "+deferred[2].Marker, out)
}

func TestRenderer_ExpandPassMixedKinds(t *testing.T) {
	// Matching-kind directives render in place while other-kind ones
	// defer; splice re-anchoring must keep both straight.
	r := newTestRenderer(t, map[string]Definition{
		"md":  {Name: "md", Kind: KindMarkdown, Source: "rendered-markdown"},
		"web": {Name: "web", Kind: KindHTML, Source: "rendered-html"},
	})

	out, deferred, err := r.ExpandPass("{{ md() }}|{{ web() }}|{{ md() }}", KindMarkdown)
	require.NoError(t, err)
	require.Len(t, deferred, 1)
	assert.Equal(t, "rendered-markdown|"+deferred[0].Marker+"|rendered-markdown", out)
}

func TestRenderer_ExpandArgumentTypes(t *testing.T) {
	r := newTestRenderer(t, map[string]Definition{
		"dump": {Name: "dump", Kind: KindMarkdown, Source: "{{ .b }}|{{ .n }}|{{ .s }}|{{ range .l }}{{ . }},{{ end }}"},
	})

	out, err := r.Expand(`{{ dump(b=true, n=1.5, s="x", l=[1, 2]) }}`, KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "true|1.5|x|1,2,", out)
}

func TestRenderer_InvalidTemplate(t *testing.T) {
	_, err := NewRenderer(map[string]Definition{
		"broken": {Name: "broken", Kind: KindMarkdown, Source: "{{ .unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestReserialize_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no args", "{{ a() }}"},
		{"typed args", `{{ a(b=true, n=-2.5, s="hi", l=[1, "x"]) }}`},
		{"escaped string", `{{ a(s="say \"hi\"") }}`},
		{"bodied", `{% a(x=1) %}body text{% end %}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, dirs := Locate(tt.input)
			require.Len(t, dirs, 1)

			text := reserialize(dirs[0])
			assert.Equal(t, tt.input, text)

			// The rebuilt syntax must locate identically.
			_, again := Locate(text)
			require.Len(t, again, 1)
			assert.Equal(t, dirs[0].Name, again[0].Name)
			assert.Equal(t, dirs[0].Args, again[0].Args)
		})
	}
}
