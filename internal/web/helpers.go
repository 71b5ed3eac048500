package web

import (
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

const dateLayout = "2006-01-02 15:04"

func itoa(value int) string {
	return strconv.Itoa(value)
}

func utoa(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

// FormatTime renders a timestamp the way game lists show it.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

func text(w io.Writer, value string) {
	_, _ = io.WriteString(w, templ.EscapeString(value))
}

func raw(w io.Writer, value string) {
	_, _ = io.WriteString(w, value)
}

const pageHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`

const pageStyle = `</title>
    <style>
      body { font-family: system-ui, sans-serif; background: #1d1f24; color: #eee; margin: 0; }
      main { max-width: 860px; margin: 0 auto; padding: 24px; }
      a { color: #9cf; }
      table { border-collapse: collapse; width: 100%; margin: 12px 0; }
      th, td { padding: 6px 10px; border-bottom: 1px solid #333; text-align: right; }
      th:first-child, td:first-child { text-align: left; }
      tr.total td { font-weight: bold; border-top: 2px solid #666; }
      .panel { background: #262930; border-radius: 8px; padding: 16px; margin-bottom: 16px; }
      .muted { color: #999; }
      button { padding: 6px 14px; }
    </style>
  </head>
  <body>
    <main>
`

const pageFoot = `    </main>
  </body>
</html>
`

func writePageStart(w io.Writer, title string) {
	raw(w, pageHead)
	text(w, title)
	raw(w, pageStyle)
}
