package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		src      string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis",
			src:      "printer is **on fire**",
			contains: []string{"<strong>on fire</strong>"},
		},
		{
			name:     "script stripped",
			src:      "hello <script>alert(1)</script>",
			contains: []string{"hello"},
			absent:   []string{"<script", "</script>"},
		},
		{
			name:     "external links are nofollow",
			src:      "see https://example.com/kb",
			contains: []string{`href="https://example.com/kb"`, `rel="nofollow noopener"`, `target="_blank"`},
		},
		{
			name:     "table",
			src:      "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:   "javascript url dropped",
			src:    "[x](javascript:alert(1))",
			absent: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.src)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRender_Blank(t *testing.T) {
	out, err := New().Render("  \n ")
	require.NoError(t, err)
	assert.Empty(t, out)
}
