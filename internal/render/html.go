package render

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Link is an anchor found in an HTML fragment.
type Link struct {
	Text string
	URL  string
}

// HTMLText flattens an inline HTML fragment to plain text. Anchors keep their
// target next to the text, line breaks become newlines and images become a
// short label.
func HTMLText(fragment string) string {
	body := parseFragment(fragment)
	if body == nil {
		return normalizeInlineText(fragment)
	}
	return normalizeInlineText(renderInlineChildren(body))
}

// Links returns every anchor with an href, in document order.
func Links(fragment string) []Link {
	body := parseFragment(fragment)
	if body == nil {
		return nil
	}
	var out []Link
	var walk func(*nethtml.Node)
	walk = func(node *nethtml.Node) {
		if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "a") {
			if href := nodeAttr(node, "href"); href != "" {
				text := normalizeInlineText(renderInlineChildren(node))
				if text == "" {
					text = href
				}
				out = append(out, Link{Text: text, URL: href})
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(body)
	return out
}

func parseFragment(fragment string) *nethtml.Node {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		return nil
	}
	return findBodyNode(doc)
}

func renderInlineChildren(node *nethtml.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(renderInlineNode(child))
	}
	return b.String()
}

func renderInlineNode(node *nethtml.Node) string {
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
		tag := strings.ToLower(node.Data)
		switch tag {
		case "script", "style", "noscript":
			return ""
		case "br":
			return "\n"
		case "img":
			alt := strings.TrimSpace(nodeAttr(node, "alt"))
			if alt == "" {
				alt = nodeAttr(node, "src")
			}
			if alt == "" {
				return ""
			}
			return "[image: " + alt + "]"
		case "a":
			text := normalizeInlineText(renderInlineChildren(node))
			href := nodeAttr(node, "href")
			switch {
			case href == "":
				return text
			case text == "":
				return href
			case strings.EqualFold(text, href), strings.EqualFold("mailto:"+text, href):
				return text
			default:
				return text + " (" + href + ")"
			}
		case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
			return "\n" + renderInlineChildren(node) + "\n"
		default:
			return renderInlineChildren(node)
		}
	default:
		return ""
	}
}

// normalizeInlineText unescapes entities and collapses runs of whitespace
// within each line, dropping blank lines.
func normalizeInlineText(s string) string {
	s = html.UnescapeString(s)
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, "\n")
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// StripHTMLBlocks replaces raw HTML blocks in markdown with their text so the
// terminal renderer, which drops raw HTML, still shows them. Fenced code is
// left alone.
func StripHTMLBlocks(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		if text := HTMLText(strings.Join(block, "\n")); text != "" {
			out = append(out, strings.Split(text, "\n")...)
		}
		block = block[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			flush()
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		if len(block) > 0 {
			if trimmed == "" {
				flush()
				out = append(out, line)
				continue
			}
			block = append(block, line)
			continue
		}
		if isHTMLBlockStart(trimmed) {
			block = append(block, line)
			continue
		}
		out = append(out, line)
	}
	flush()
	return strings.Join(out, "\n")
}

func isHTMLBlockStart(line string) bool {
	if len(line) < 2 || line[0] != '<' {
		return false
	}
	c := line[1]
	if c == '/' && len(line) > 2 {
		c = line[2]
	}
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
