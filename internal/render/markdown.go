package render

import (
	"html/template"
	"regexp"
	"strings"
)

// The markdown dialect is a fixed chain of substitutions, not a parser.
// Rule order is the contract: later rules match text inserted by earlier
// ones, so reordering changes the output. Nested constructs are not
// guaranteed to compose; that is an accepted limitation of the dialect.
var (
	mdLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	mdBoldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalicRe = regexp.MustCompile(`\*([^*]+)\*`)
	mdH3Re     = regexp.MustCompile(`(?m)^### (.+)$`)
	mdH2Re     = regexp.MustCompile(`(?m)^## (.+)$`)
	mdQuoteRe  = regexp.MustCompile(`(?m)^> (.+)$`)
	youtubeRe  = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{11})[^\s<]*`)
	autolinkRe = regexp.MustCompile(`(^|[^">])(https?://[^\s<]+)`)
	lineBreaks = strings.NewReplacer("\n", "<br>")
)

// blockPrefixes mark segments that are already block elements and must not
// be wrapped in a paragraph
var blockPrefixes = []string{"<h2>", "<h3>", "<blockquote>", `<div class="video-embed">`}

// Markdown converts the constrained markdown dialect into an HTML fragment.
// A record with no content degrades to an empty fragment.
func Markdown(content string) template.HTML {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	out := content

	// 1. Markdown links open in a new context with safety attributes.
	out = mdLinkRe.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)

	// 2. Bold before italic so ** never parses as two singles.
	out = mdBoldRe.ReplaceAllString(out, `<strong>$1</strong>`)

	// 3. Italic.
	out = mdItalicRe.ReplaceAllString(out, `<em>$1</em>`)

	// 4. ATX headings, ### before ## since the shorter marker is a prefix
	// of the longer one. Surrounding blank lines close the open paragraph.
	out = mdH3Re.ReplaceAllString(out, "\n\n<h3>$1</h3>\n\n")
	out = mdH2Re.ReplaceAllString(out, "\n\n<h2>$1</h2>\n\n")

	// 5. Block quotes break paragraph flow the same way.
	out = mdQuoteRe.ReplaceAllString(out, "\n\n<blockquote>$1</blockquote>\n\n")

	// 6. YouTube URLs become embedded players, not links.
	out = youtubeRe.ReplaceAllString(out,
		"\n\n"+`<div class="video-embed"><iframe src="https://www.youtube.com/embed/$1" frameborder="0" allowfullscreen></iframe></div>`+"\n\n")

	// 7. Autolink remaining bare URLs. Anchors inserted above carry the
	// URL directly after a quote or bracket close, which the leading
	// character class excludes.
	out = autolinkRe.ReplaceAllString(out, `$1<a href="$2" target="_blank" rel="noopener noreferrer">$2</a>`)

	// 8. Paragraph segmentation on blank lines; single newlines become
	// line breaks; empty segments are dropped.
	var b strings.Builder
	for _, segment := range strings.Split(out, "\n\n") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if isBlockSegment(segment) {
			b.WriteString(segment)
			continue
		}
		b.WriteString("<p>")
		b.WriteString(lineBreaks.Replace(segment))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}

func isBlockSegment(segment string) bool {
	for _, prefix := range blockPrefixes {
		if strings.HasPrefix(segment, prefix) {
			return true
		}
	}
	return false
}
