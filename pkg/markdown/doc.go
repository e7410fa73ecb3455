// Package markdown renders report Markdown to an HTML fragment using goldmark.
//
// Tables, strikethrough, bare URL autolinking, task lists and footnotes are
// enabled, fenced code blocks come from CommonMark itself, and raw HTML is
// passed through so .html report files survive concatenation.
//
// Images follow a fixed policy:
//
//   - http and https destinations are emitted as <img> tags.
//   - Any other destination is resolved against the base directory. An
//     existing file is recorded in Result.Attachments (with a MIME type and a
//     content-id) and replaced by an inline placeholder span naming the file.
//   - A missing file is replaced by an inline "image not found" span.
//
// Render never fails. The attachments are part of the returned Result, so
// renders are independent of each other and the same input always produces the
// same output.
//
//	r := markdown.NewRenderer()
//	res := r.Render(body, "./reports/weekly")
//	for _, a := range res.Attachments {
//	    fmt.Println(a.Filename, a.ContentID)
//	}
package markdown
