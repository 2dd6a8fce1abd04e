package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "whitespace only",
			content: "  \n\n  ",
			want:    "",
		},
		{
			name:    "plain paragraph",
			content: "Just a sentence.",
			want:    "<p>Just a sentence.</p>",
		},
		{
			name:    "two paragraphs",
			content: "First.\n\nSecond.",
			want:    "<p>First.</p><p>Second.</p>",
		},
		{
			name:    "single newline becomes line break",
			content: "line one\nline two",
			want:    "<p>line one<br>line two</p>",
		},
		{
			name:    "bold and italic",
			content: "**bold** and *emphasis*",
			want:    "<p><strong>bold</strong> and <em>emphasis</em></p>",
		},
		{
			name:    "h2 heading closes paragraph",
			content: "## Heading\n\nBody",
			want:    "<h2>Heading</h2><p>Body</p>",
		},
		{
			name:    "h3 not swallowed by h2 rule",
			content: "### Sub Heading",
			want:    "<h3>Sub Heading</h3>",
		},
		{
			name:    "blockquote",
			content: "> Quoted wisdom",
			want:    "<blockquote>Quoted wisdom</blockquote>",
		},
		{
			name:    "markdown link",
			content: "See [the site](https://example.com) for more",
			want:    `<p>See <a href="https://example.com" target="_blank" rel="noopener noreferrer">the site</a> for more</p>`,
		},
		{
			name:    "bare url autolinked",
			content: "Visit https://example.com today",
			want:    `<p>Visit <a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a> today</p>`,
		},
		{
			name:    "youtube short url becomes embed",
			content: "Watch: https://youtu.be/abc12345678",
			want:    `<p>Watch:</p><div class="video-embed"><iframe src="https://www.youtube.com/embed/abc12345678" frameborder="0" allowfullscreen></iframe></div>`,
		},
		{
			name:    "youtube watch url becomes embed",
			content: "https://www.youtube.com/watch?v=abc12345678",
			want:    `<div class="video-embed"><iframe src="https://www.youtube.com/embed/abc12345678" frameborder="0" allowfullscreen></iframe></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Markdown(tt.content)); got != tt.want {
				t.Errorf("Markdown(%q)\n got: %s\nwant: %s", tt.content, got, tt.want)
			}
		})
	}
}

func TestMarkdownLinkNotRelinked(t *testing.T) {
	// The autolink pass must leave URLs inside generated anchors alone.
	got := string(Markdown("[x](https://example.com/a)"))
	if strings.Count(got, "<a ") != 1 {
		t.Errorf("expected exactly one anchor, got: %s", got)
	}
}

func BenchmarkMarkdown(b *testing.B) {
	content := strings.Repeat("## Section\n\nSome **bold** text with a [link](https://example.com) and\nmore lines.\n\n> A quote.\n\n", 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Markdown(content)
	}
}
