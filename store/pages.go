package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPageNotFound covers both unknown and non-editable page names
var ErrPageNotFound = errors.New("page not found")

// Pages that hold the console and the storefront entry point. They are served
// but never editable.
var deniedPages = map[string]bool{
	"login.html":     true,
	"dashboard.html": true,
	"index.html":     true,
}

// Pages gives the console access to the raw HTML files in the public root
type Pages struct {
	root string
}

func NewPages(root string) *Pages {
	return &Pages{root: root}
}

// Root returns the public directory the pages live in
func (p *Pages) Root() string {
	return p.root
}

// List returns the editable page names, sorted
func (p *Pages) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() || !editable(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Read returns the content of an editable page
func (p *Pages) Read(_ context.Context, name string) (string, error) {
	if !editable(name) {
		return "", ErrPageNotFound
	}
	path := filepath.Join(p.root, name)
	if _, err := p.stat(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(data), nil
}

// Write overwrites an existing editable page
func (p *Pages) Write(_ context.Context, name, content string) error {
	if !editable(name) {
		return ErrPageNotFound
	}
	path := filepath.Join(p.root, name)
	info, err := p.stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}

// Servable reports whether name is an HTML file that may be served publicly.
// Denied pages are servable; they are only excluded from editing.
func (p *Pages) Servable(name string) bool {
	if !htmlName(name) {
		return false
	}
	info, err := os.Stat(filepath.Join(p.root, name))
	return err == nil && !info.IsDir()
}

func (p *Pages) stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to stat page: %w", err)
	}
	if info.IsDir() {
		return nil, ErrPageNotFound
	}
	return info, nil
}

func editable(name string) bool {
	return htmlName(name) && !deniedPages[strings.ToLower(name)]
}

// htmlName accepts a bare "<name>.html" with no path components
func htmlName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".html")
}
