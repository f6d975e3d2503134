package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPages(t *testing.T) (*Pages, string) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":     "<h1>home</h1>",
		"login.html":     "<form></form>",
		"dashboard.html": "<div>console</div>",
		"about.html":     "<p>about</p>",
		"shop.html":      "<p>shop</p>",
		"style.css":      "body{}",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested.html"), 0o755))
	return NewPages(root), root
}

func TestPagesListExcludesDenied(t *testing.T) {
	p, _ := newTestPages(t)

	files, err := p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"about.html", "shop.html"}, files)
}

func TestPagesListMissingRoot(t *testing.T) {
	p := NewPages(filepath.Join(t.TempDir(), "missing"))

	_, err := p.List(context.Background())
	assert.Error(t, err)
}

func TestPagesReadWrite(t *testing.T) {
	ctx := context.Background()
	p, root := newTestPages(t)

	content, err := p.Read(ctx, "about.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>about</p>", content)

	require.NoError(t, p.Write(ctx, "about.html", "<p>new</p>"))
	data, err := os.ReadFile(filepath.Join(root, "about.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>new</p>", string(data))
}

func TestPagesRejectDeniedNamesEvenWhenPresent(t *testing.T) {
	ctx := context.Background()
	p, root := newTestPages(t)

	for _, name := range []string{"index.html", "login.html", "dashboard.html", "INDEX.html"} {
		_, err := p.Read(ctx, name)
		assert.ErrorIs(t, err, ErrPageNotFound, name)
		assert.ErrorIs(t, p.Write(ctx, name, "pwned"), ErrPageNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(root, "login.html"))
	require.NoError(t, err)
	assert.Equal(t, "<form></form>", string(data))
}

func TestPagesRejectUnknownAndUnsafeNames(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPages(t)

	for _, name := range []string{"missing.html", "style.css", "../about.html", "sub/about.html", `..\about.html`, ".hidden.html", "", "nested.html"} {
		_, err := p.Read(ctx, name)
		assert.ErrorIs(t, err, ErrPageNotFound, name)
		assert.ErrorIs(t, p.Write(ctx, name, "x"), ErrPageNotFound, name)
	}
}

func TestPagesWriteDoesNotCreate(t *testing.T) {
	ctx := context.Background()
	p, root := newTestPages(t)

	assert.ErrorIs(t, p.Write(ctx, "new.html", "<p>new</p>"), ErrPageNotFound)
	_, err := os.Stat(filepath.Join(root, "new.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestPagesServable(t *testing.T) {
	p, _ := newTestPages(t)

	assert.True(t, p.Servable("index.html"))
	assert.True(t, p.Servable("login.html"))
	assert.True(t, p.Servable("about.html"))
	assert.False(t, p.Servable("missing.html"))
	assert.False(t, p.Servable("style.css"))
	assert.False(t, p.Servable("../index.html"))
	assert.False(t, p.Servable("nested.html"))
}
