package quality

import (
	"strings"

	"golang.org/x/net/html"

	"creatoriq/internal/textutil"
)

// document is the single-pass structural summary of an artifact's markup.
type document struct {
	lowered          string
	visibleText      string
	comments         []string
	hasLang          bool
	hasViewport      bool
	images           int
	imagesMissingAlt int
	headings         int
	legacyTags       map[string]int
}

var hiddenTextTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

var legacyTagNames = map[string]struct{}{
	"font":    {},
	"center":  {},
	"marquee": {},
	"blink":   {},
}

var headingTags = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

func parseDocument(markup string) document {
	doc := document{
		lowered:    strings.ToLower(markup),
		legacyTags: map[string]int{},
	}
	var text strings.Builder
	hiddenDepth := 0

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			doc.visibleText = textutil.CollapseWhitespace(text.String())
			return doc
		case html.TextToken:
			if hiddenDepth == 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		case html.CommentToken:
			doc.comments = append(doc.comments, string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			attrs := readAttrs(z, hasAttr)
			if _, ok := hiddenTextTags[tag]; ok {
				hiddenDepth++
				continue
			}
			doc.inspectTag(tag, attrs)
			// Block boundaries separate words even when the markup has no whitespace.
			text.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if _, ok := hiddenTextTags[string(name)]; ok && hiddenDepth > 0 {
				hiddenDepth--
				continue
			}
			text.WriteByte(' ')
		}
	}
}

func readAttrs(z *html.Tokenizer, hasAttr bool) map[string]string {
	attrs := map[string]string{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[strings.ToLower(string(key))] = string(val)
	}
	return attrs
}

func (d *document) inspectTag(tag string, attrs map[string]string) {
	switch tag {
	case "html":
		if strings.TrimSpace(attrs["lang"]) != "" {
			d.hasLang = true
		}
	case "meta":
		if strings.EqualFold(strings.TrimSpace(attrs["name"]), "viewport") {
			d.hasViewport = true
		}
	case "img":
		d.images++
		if _, ok := attrs["alt"]; !ok {
			d.imagesMissingAlt++
		}
	}
	if _, ok := headingTags[tag]; ok {
		d.headings++
	}
	if _, ok := legacyTagNames[tag]; ok {
		d.legacyTags[tag]++
	}
}

// VisibleText extracts the human-visible text of markup with script, style,
// tags, and comments removed and whitespace collapsed.
func VisibleText(markup string) string {
	return parseDocument(markup).visibleText
}

var placeholderMarkers = []string{"lorem ipsum", "placeholder", "coming soon", "[insert"}

func (d document) placeholders() []string {
	var found []string
	for _, marker := range placeholderMarkers {
		if strings.Contains(d.lowered, marker) {
			found = append(found, marker)
		}
	}
	return found
}
