// internal/view/html.go
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/mwiater/ccboard/internal/leaderboard"
)

// PageData is the view model handed to the page template.
type PageData struct {
	Title       string
	Subtitle    string
	Legend      []string
	Rows        []Row
	BarGradient template.CSS
}

// Page builds the template data for the current state.
func (v *View) Page() PageData {
	return PageData{
		Title:       v.opts.Title,
		Subtitle:    v.opts.Subtitle,
		Legend:      Legend,
		Rows:        v.Rows(),
		BarGradient: template.CSS(BarGradient),
	}
}

// Render writes the standalone HTML page. Before Load, or after a failed Load,
// only the header is drawn.
func (v *View) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v.Page()); err != nil {
		return fmt.Errorf("render leaderboard page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderString is Render into a string.
func (v *View) RenderString() (string, error) {
	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func px(v float64) template.CSS {
	return template.CSS(leaderboard.FormatScore(v) + "px")
}

var pageTemplate = template.Must(template.New("leaderboard").Funcs(template.FuncMap{"px": px}).Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body {
      margin: 0;
      font-family: -apple-system, BlinkMacSystemFont, "SF Pro Display", "Segoe UI", Roboto, sans-serif;
      color: #111827;
    }
    .page {
      width: 100vw;
      display: flex;
      flex-direction: column;
      align-items: center;
      padding-top: 5rem;
    }
    .title { font-size: 2.25rem; margin: 0; }
    .subtitle { margin: 0.25rem 0 0; color: #374151; }
    .legend p { margin: 0; }
    .models { margin-top: 2.5rem; }
    .model-item {
      display: flex;
      align-items: center;
      padding: 1rem 0;
    }
    .model-name {
      font-size: 1.25rem;
      width: 12rem;
      text-align: right;
      margin: 0 1.5rem 0 0;
      letter-spacing: 0.025em;
    }
    .model-track {
      flex: 1;
      position: relative;
      min-width: 40rem;
    }
    .metric-number {
      position: absolute;
      bottom: 100%;
      display: flex;
      flex-direction: column;
      align-items: center;
      margin-left: -1.25rem;
      font-size: 0.875rem;
    }
    .metric-number p { margin: 0; line-height: 1; }
    .bar {
      height: 0.75rem;
      border-radius: 9999px;
    }
  </style>
</head>
<body>
  <div class="page">
    <p class="title">{{ .Title }}</p>
    <p class="subtitle">{{ .Subtitle }}</p>
    <div class="legend">
      {{- range .Legend }}
      <p>{{ . }}</p>
      {{- end }}
    </div>
    <div class="models">
      {{- range .Rows }}
      <div class="model-item" data-rank="{{ .Rank }}">
        <p class="model-name">{{ .Name }}</p>
        <div class="model-track">
          {{- range .Markers }}
          <div class="metric-number metric-{{ .Label }}" style="left: {{ px .Offset }}">
            <p>{{ .Label }}</p>
            <p>{{ .Value }}</p>
          </div>
          {{- end }}
          <div class="bar" style="width: {{ px .BarWidth }}; background: {{ $.BarGradient }}"></div>
        </div>
      </div>
      {{- end }}
    </div>
  </div>
</body>
</html>
`
