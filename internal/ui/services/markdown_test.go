package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRenderer struct{}

func (failingRenderer) Render(string, int) (string, error) { return "", errors.New("boom") }

func TestGlamourRenderer_Render(t *testing.T) {
	r := NewGlamourRenderer("dark")

	out, err := r.Render("# Title\n\nSome **bold** text", 40)

	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "**")
}

func TestGlamourRenderer_NoTTYKeepsMarkers(t *testing.T) {
	r := NewGlamourRenderer("notty")

	out, err := r.Render("Some **bold** text", 40)

	require.NoError(t, err)
	assert.Contains(t, out, "**bold**")
}

func TestGlamourRenderer_CachesPerWidth(t *testing.T) {
	r := NewGlamourRenderer("notty")

	_, err := r.Render("a", 40)
	require.NoError(t, err)
	_, err = r.Render("b", 40)
	require.NoError(t, err)
	_, err = r.Render("c", 60)
	require.NoError(t, err)

	assert.Len(t, r.renderers, 2)
}

func TestGlamourRenderer_UnknownStyle(t *testing.T) {
	_, err := NewGlamourRenderer("no-such-style").Render("x", 40)
	assert.Error(t, err)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("plain", 80, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", out)

	out, err = RenderMarkdown("plain", 0, failingRenderer{})
	require.NoError(t, err)
	assert.Equal(t, "plain", out)

	_, err = RenderMarkdown("plain", 80, failingRenderer{})
	assert.Error(t, err)
}
