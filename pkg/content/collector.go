package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Separator is placed between the bodies of consecutive files.
const Separator = "\n\n"

var extensions = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".html":     {},
}

// yamlFormat parses "---" delimited front matter with yaml.v3.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Content is the concatenated body of all report files in a directory.
type Content struct {
	// Dir is the directory the files were read from.
	Dir string
	// Files lists the base names of the files read, in order.
	Files []string
	// Body holds the file bodies joined by Separator, front matter removed.
	Body string
	// Subject is the first non-empty "subject" front matter value, if any.
	Subject string
}

// Empty reports whether there is anything to send.
func (c Content) Empty() bool {
	return strings.TrimSpace(c.Body) == ""
}

type frontMatter struct {
	Subject string `yaml:"subject"`
}

// Collect reads every Markdown/HTML file directly inside dir, sorted by name,
// and concatenates their bodies.
//
// A missing directory, a directory without matching files, or files with only
// whitespace return an empty Content together with ErrNoContent.
func Collect(dir string) (Content, error) {
	files, err := List(dir)
	if err != nil {
		return Content{Dir: dir}, err
	}

	c := Content{Dir: dir}
	parts := make([]string, 0, len(files))
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return Content{Dir: dir}, fmt.Errorf("%w: %s: %v", ErrReadFailed, name, err)
		}
		body, meta := stripFrontMatter(raw)
		if c.Subject == "" {
			c.Subject = strings.TrimSpace(meta.Subject)
		}
		c.Files = append(c.Files, name)
		parts = append(parts, string(body))
	}
	c.Body = strings.Join(parts, Separator)

	if c.Empty() {
		return c, ErrNoContent
	}
	return c, nil
}

// List returns the base names of Markdown/HTML files directly inside dir,
// sorted by name. Extension matching is case-insensitive.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s does not exist", ErrNoContent, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := extensions[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		if !e.Type().IsRegular() {
			// symlinks count only when they point at a regular file
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no .md or .html files in %s", ErrNoContent, dir)
	}

	sort.Strings(names)
	return names, nil
}

// stripFrontMatter removes a leading YAML front matter block.
// Files without front matter, or with front matter that does not parse, are
// returned unchanged.
func stripFrontMatter(raw []byte) ([]byte, frontMatter) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, yamlFormat)
	if err != nil {
		return raw, frontMatter{}
	}
	return body, meta
}

// ResolveDir picks the directory holding the reports for a period.
// It prefers base/<lowercase period> and falls back to base when that
// subdirectory does not exist.
func ResolveDir(base, period string) string {
	p := strings.ToLower(strings.TrimSpace(period))
	if p == "" {
		return base
	}
	sub := filepath.Join(base, p)
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		return sub
	}
	return base
}
