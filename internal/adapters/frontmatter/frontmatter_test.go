package frontmatter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := "---\ntitle: Hello\ntags: [x, y]\ndate: 2024-03-01\n---\nhello <!--more-->world\n"

	header, body, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Hello", header.String("title"))
	assert.Equal(t, []string{"x", "y"}, header.Strings("tags"))
	assert.Equal(t, "2024-03-01", header.String("date"))
	assert.Equal(t, "hello <!--more-->world\n", body)
}

func TestParse_NoHeader(t *testing.T) {
	header, body, err := Parse([]byte("# Title\n\ntext"))
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, "# Title\n\ntext", body)
}

func TestParse_EmptyHeader(t *testing.T) {
	header, body, err := Parse([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, "body", body)
}

func TestParse_CRLF(t *testing.T) {
	header, body, err := Parse([]byte("---\r\ntitle: Win\r\n---\r\nline\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Win", header.String("title"))
	assert.Equal(t, "line\n", body)
}

func TestParse_Unterminated(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: x\nno closing"))
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: [unclosed\n---\nbody"))
	assert.Error(t, err)
}

func TestParse_NestedMapsAreJSONEncodable(t *testing.T) {
	header, _, err := Parse([]byte("---\nmeta:\n  1: one\n  author: me\n---\n"))
	require.NoError(t, err)

	_, err = json.Marshal(header)
	assert.NoError(t, err)
}
