// Package profile holds the personal details behind the informational
// commands.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type Contact struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
	URL   string `yaml:"url"`
}

type Profile struct {
	Name       string    `yaml:"name"`
	Bio        string    `yaml:"bio"`
	Image      Image     `yaml:"image"`
	Contacts   []Contact `yaml:"contacts"`
	Experience []string  `yaml:"experience"`
	Education  []string  `yaml:"education"`
	Hobbies    []string  `yaml:"hobbies"`
	Tips       []string  `yaml:"tips"`
}

// Default is the profile shipped with the binary.
func Default() Profile {
	p, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded profile is invalid: %v", err))
	}
	return p
}

// Load reads a profile file. An empty path yields Default.
func Load(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is required")
	}
	for i, c := range p.Contacts {
		if strings.TrimSpace(c.Label) == "" {
			return fmt.Errorf("contact %d: label is required", i+1)
		}
		if c.URL == "" {
			continue
		}
		u, err := url.Parse(c.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "mailto") {
			return fmt.Errorf("contact %q: url must be http(s) or mailto", c.Label)
		}
	}
	return nil
}

// Contact finds a contact by label, ignoring case.
func (p Profile) Contact(label string) (Contact, bool) {
	for _, c := range p.Contacts {
		if strings.EqualFold(c.Label, label) {
			return c, true
		}
	}
	return Contact{}, false
}

// ContactsHTML renders the contact list as the inline HTML fragment shown by
// the contacts command.
func (p Profile) ContactsHTML() string {
	parts := make([]string, 0, len(p.Contacts))
	for _, c := range p.Contacts {
		text := c.Text
		if text == "" {
			text = c.URL
		}
		if c.URL == "" {
			parts = append(parts, fmt.Sprintf("%s: %s", c.Label, escape(text)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: <a href='%s'>%s</a>", c.Label, escape(c.URL), escape(text)))
	}
	return strings.Join(parts, "<br>")
}

// ImageHTML renders the profile image as an img tag.
func (p Profile) ImageHTML() string {
	if p.Image.Src == "" {
		return ""
	}
	alt := p.Image.Alt
	if alt == "" {
		alt = p.Name
	}
	return fmt.Sprintf("<img src='%s' alt='%s'>", escape(p.Image.Src), escape(alt))
}

func Bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "'", "&#39;", `"`, "&#34;")

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
