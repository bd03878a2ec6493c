package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Senior Go engineer\n\nRemote", "Senior Go engineer\n\nRemote"},
		{"comparison operator untouched", "salary < 50k", "salary < 50k"},
		{"strips tags", "<ul>\n<li>Go</li>\n<li>Kubernetes</li>\n</ul>", "Go Kubernetes"},
		{"drops scripts and styles", "<style>p{}</style><p>SQL</p><script>alert(1)</script>", "SQL"},
		{"markup without text falls back", "<br/>", "<br/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
