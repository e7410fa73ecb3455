package templates

import (
	"time"

	"github.com/a-h/templ"
)

// TimestampFormat is the layout of the generation time in the footer.
const TimestampFormat = "2006-01-02 15:04:05"

// ReportData holds the values placed into the report document.
type ReportData struct {
	// Title is used for the document <title>.
	Title string
	// Period labels the report in the footer, e.g. "Weekly".
	Period string
	// Body is the rendered HTML fragment. It is inserted unescaped.
	Body string
	// GeneratedAt is shown in the footer in local time. Zero means now.
	GeneratedAt time.Time
}

// Stylesheet is embedded in every report. Email clients strip <link> tags,
// so nothing is loaded from outside the document.
const Stylesheet = `body{margin:0;padding:0;background:#f4f5f7;color:#24292f;font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif;font-size:15px;line-height:1.6}
.container{max-width:760px;margin:24px auto;padding:24px 32px;background:#ffffff;border:1px solid #e1e4e8;border-radius:6px}
h1,h2,h3,h4{color:#1f2328;line-height:1.25;margin:24px 0 12px}
h1{font-size:1.8em;border-bottom:1px solid #e1e4e8;padding-bottom:.3em}
h2{font-size:1.4em;border-bottom:1px solid #eaecef;padding-bottom:.3em}
p,ul,ol,table,pre,blockquote{margin:0 0 16px}
a{color:#0969da;text-decoration:none}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #d0d7de;padding:6px 13px;text-align:left}
th{background:#f6f8fa;font-weight:600}
tr:nth-child(even) td{background:#fafbfc}
code{font-family:SFMono-Regular,Consolas,"Liberation Mono",Menlo,monospace;font-size:85%;background:#f6f8fa;padding:.2em .4em;border-radius:4px}
pre{background:#f6f8fa;padding:12px 16px;border-radius:6px;overflow:auto}
pre code{background:none;padding:0;font-size:13px}
blockquote{border-left:4px solid #d0d7de;color:#57606a;padding:0 1em}
img{max-width:100%;height:auto}
span.image-attachment,span.image-missing{color:#57606a;font-style:italic}
.footer{max-width:760px;margin:0 auto 24px;color:#8c959f;font-size:12px;text-align:center}`

// generatedAt formats the footer timestamp in local time.
func (d ReportData) generatedAt() string {
	t := d.GeneratedAt
	if t.IsZero() {
		t = time.Now()
	}
	return t.Local().Format(TimestampFormat)
}

// styleElement embeds Stylesheet. Text inside a templ <style> element is
// literal, so the constant is injected as raw HTML.
func styleElement() templ.Component {
	return templ.Raw("<style>" + Stylesheet + "</style>")
}
