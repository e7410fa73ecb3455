package markdown

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

const defaultMIMEType = "application/octet-stream"

// Attachment is a local image discovered while rendering.
type Attachment struct {
	// Path is the resolved filesystem path of the image.
	Path string
	// Filename is the base name of Path.
	Filename string
	// MIMEType is derived from the file extension.
	MIMEType string
	// ContentID references the attachment for inline display.
	ContentID string
}

// imageRenderer replaces goldmark's default image rendering.
// Remote images stay <img> tags; local images become placeholders and are
// recorded as attachments.
type imageRenderer struct {
	baseDir string
	found   []Attachment
	seen    map[string]int
}

func newImageRenderer(baseDir string) *imageRenderer {
	return &imageRenderer{
		baseDir: baseDir,
		seen:    make(map[string]int),
	}
}

func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) attachments() []Attachment {
	if len(r.found) == 0 {
		return nil
	}
	out := make([]Attachment, len(r.found))
	copy(out, r.found)
	return out
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	dest := string(n.Destination)
	alt := string(n.Text(source))

	if isRemote(dest) {
		writeImgTag(w, n, alt)
		return ast.WalkSkipChildren, nil
	}

	path := r.resolve(dest)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		label := alt
		if label == "" {
			label = dest
		}
		fmt.Fprintf(w, `<span class="image-missing">[image not found: %s]</span>`, util.EscapeHTML([]byte(label)))
		return ast.WalkSkipChildren, nil
	}

	a := r.record(path)
	label := alt
	if label == "" {
		label = a.Filename
	}
	fmt.Fprintf(w, `<span class="image-attachment">📎 %s (attached: %s)</span>`,
		util.EscapeHTML([]byte(label)), util.EscapeHTML([]byte(a.Filename)))
	return ast.WalkSkipChildren, nil
}

// record registers path once per render and returns its attachment.
func (r *imageRenderer) record(path string) Attachment {
	if i, ok := r.seen[path]; ok {
		return r.found[i]
	}
	a := Attachment{
		Path:      path,
		Filename:  filepath.Base(path),
		MIMEType:  mimeType(path),
		ContentID: contentID(path),
	}
	r.seen[path] = len(r.found)
	r.found = append(r.found, a)
	return a
}

func (r *imageRenderer) resolve(dest string) string {
	p := dest
	if u, err := url.Parse(dest); err == nil && u.Scheme == "file" {
		p = u.Path
	} else if unescaped, err := url.PathUnescape(dest); err == nil {
		p = unescaped
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.baseDir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return p
}

func writeImgTag(w util.BufWriter, n *ast.Image, alt string) {
	_, _ = w.WriteString(`<img src="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(">")
}

func isRemote(dest string) bool {
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func mimeType(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return defaultMIMEType
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}

// contentID is derived from the path so repeated renders of the same input
// produce identical output.
func contentID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path))).String()
}
