package importcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCmdImport(t *testing.T) {
	cmd := NewCmdImport()
	assert.Equal(t, "import <file.html>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("title"))
	assert.NotNil(t, cmd.Flags().Lookup("dest"))
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"title element", "<html><title>About Us</title><body></body></html>", "About Us"},
		{"title wins over h1", "<title>Real</title><h1>Other</h1>", "Real"},
		{"h1 fallback", "<body><h1>Heading</h1></body>", "Heading"},
		{"h1 with markup", `<h1><span class="x">Nested</span></h1>`, "Nested"},
		{"whitespace trimmed", "<title>\n  Padded \n</title>", "Padded"},
		{"none", "<p>no title here</p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTitle(tt.html))
		})
	}
}
