package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHTMLText_ContactSnippet(t *testing.T) {
	in := `Email: <a href='mailto:jane@example.org'>jane@example.org</a> <br>GitHub: <a href='https://github.com/jane'>@jane</a>`
	got := HTMLText(in)
	want := "Email: jane@example.org\nGitHub: @jane (https://github.com/jane)"
	if got != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", got, want)
	}
}

func TestHTMLText_ImagesAndEntities(t *testing.T) {
	got := HTMLText(`<img src="me.jpg" alt="Jane Doe"> Tom &amp; Jerry`)
	if got != "[image: Jane Doe] Tom & Jerry" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestLinks(t *testing.T) {
	links := Links(`<a href="mailto:a@b.c">mail</a> and <a href="https://x.org"></a> <a>none</a>`)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %+v", links)
	}
	if links[0] != (Link{Text: "mail", URL: "mailto:a@b.c"}) {
		t.Fatalf("unexpected first link %+v", links[0])
	}
	if links[1].Text != "https://x.org" {
		t.Fatalf("expected href as text for empty anchor, got %+v", links[1])
	}
}

func TestStripHTMLBlocks_KeepsFencedCode(t *testing.T) {
	md := strings.Join([]string{
		"# Title",
		"",
		`<p align="center"><img src="x.png" alt="diagram"></p>`,
		"",
		"```html",
		"<div>keep me</div>",
		"```",
		"text with <b>inline</b> html",
	}, "\n")
	got := StripHTMLBlocks(md)

	if strings.Contains(got, `<p align`) {
		t.Fatalf("expected html block to be flattened, got:\n%s", got)
	}
	if !strings.Contains(got, "[image: diagram]") {
		t.Fatalf("expected image label, got:\n%s", got)
	}
	if !strings.Contains(got, "<div>keep me</div>") {
		t.Fatalf("expected fenced html untouched, got:\n%s", got)
	}
	if !strings.Contains(got, "text with <b>inline</b> html") {
		t.Fatalf("expected inline html in paragraphs untouched, got:\n%s", got)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox\n\nsupercalifragilistic", 9)
	want := []string{"the quick", "brown fox", "", "supercali", "fragilist", "ic"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected wrap %q", got)
	}
	for _, line := range Wrap("héllo wörld ñandú", 6) {
		if ansi.StringWidth(line) > 6 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestTrimBlankLines(t *testing.T) {
	got := TrimBlankLines([]string{"", "  ", "a", "", "", "b", ""})
	if strings.Join(got, "|") != "a||b" {
		t.Fatalf("unexpected lines %q", got)
	}
	if TrimBlankLines([]string{"", " "}) != nil {
		t.Fatal("expected nil for all-blank input")
	}
}

func TestMarkdownLines_RendersAndCaches(t *testing.T) {
	m := NewMarkdown()
	lines := m.Lines("# Hello\n\nSome **bold** text.", StylePlain, 40)
	joined := ansi.Strip(strings.Join(lines, "\n"))
	if !strings.Contains(joined, "Hello") || !strings.Contains(joined, "bold") {
		t.Fatalf("unexpected render:\n%s", joined)
	}
	_ = m.Lines("again", StylePlain, 40)
	if len(m.renderers) != 1 {
		t.Fatalf("expected one cached renderer, got %d", len(m.renderers))
	}
	if m.Lines("   ", StyleDark, 40) != nil {
		t.Fatal("expected no lines for blank markdown")
	}
}

func TestStyleFor(t *testing.T) {
	cases := map[string]string{"light": StyleLight, "dark": StyleDark, "": StyleDark, "plain": StylePlain}
	for in, want := range cases {
		if got := StyleFor(in); got != want {
			t.Fatalf("StyleFor(%q)=%q want %q", in, got, want)
		}
	}
}
