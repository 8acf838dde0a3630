package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Tips)
	_, ok := p.Contact("github")
	assert.True(t, ok)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Name, p.Name)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "name: Sam\ncontacts:\n  - label: Site\n    text: sam.dev\n    url: https://sam.dev\nhobbies: [chess]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.Name)
	assert.Equal(t, []string{"chess"}, p.Hobbies)
	assert.Equal(t, "Site: <a href='https://sam.dev'>sam.dev</a>", p.ContactsHTML())
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]string{
		"missing name":  "bio: hi\n",
		"bad scheme":    "name: x\ncontacts:\n  - label: Evil\n    url: javascript:alert(1)\n",
		"missing label": "name: x\ncontacts:\n  - url: https://x.org\n",
		"bad yaml":      "name: [\n",
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestImageHTMLAndBullets(t *testing.T) {
	p := Profile{Name: "A & B", Image: Image{Src: "me.png"}}
	assert.Equal(t, "<img src='me.png' alt='A &amp; B'>", p.ImageHTML())
	assert.Equal(t, "", Profile{}.ImageHTML())
	assert.Equal(t, "- one\n- two", Bullets([]string{"one", "two"}))
}
