// Package content gathers the report files that make up one sitrep.
//
// Collect lists the .md, .markdown and .html files directly inside a
// directory (no recursion), sorts them by name, strips optional YAML front
// matter and joins the bodies with a blank line. An absent or empty directory
// is reported with ErrNoContent so callers can treat it as "nothing to send"
// instead of a failure:
//
//	c, err := content.Collect(content.ResolveDir("./reports", "Weekly"))
//	if errors.Is(err, content.ErrNoContent) {
//	    return nil // skip
//	}
//
// Front matter may carry a subject line:
//
//	---
//	subject: Platform status for week 41
//	---
//	# Status
package content
