package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/bobmcallan/stockscope/internal/models"
	"github.com/bobmcallan/stockscope/internal/report"
)

// pageData feeds the single web template. Result and Error are mutually
// exclusive; both nil/empty renders the bare form.
type pageData struct {
	Result    *models.AnalysisResult
	Narrative string
	Error     string
	Ticker    string
	Capital   string
	Version   string
}

var webTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%+.2f%%", v) },
	"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f1":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f4":  func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"signalClass": func(s models.Signal) string {
		switch s {
		case models.SignalGood:
			return "good"
		case models.SignalBad:
			return "bad"
		case models.SignalWarn:
			return "warn"
		default:
			return "muted"
		}
	},
}).Parse(indexHTML))

// handleIndex handles GET / with the empty analysis form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	s.renderPage(w, pageData{})
}

// handleAnalyzeForm handles POST /analyze from the web form and renders
// the result (or the error) back into the same page.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	ticker := r.FormValue("ticker")
	capital := r.FormValue("capital")

	data := pageData{Ticker: ticker, Capital: capital}

	result, err := s.app.AnalysisService.Analyze(r.Context(), ticker, capital)
	if err != nil {
		data.Error = err.Error()
		s.renderPage(w, data)
		return
	}

	data.Result = result
	data.Narrative = report.StripMarkdown(result.Narrative)
	s.renderPage(w, data)
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := webTemplate.Execute(w, data); err != nil {
		s.logger.Error().Err(err).Msg("Template render failed")
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>StockScope</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1d2129; }
h1 { font-size: 1.6rem; }
form { display: flex; gap: .5rem; margin: 1.5rem 0; }
input[type=text] { padding: .5rem; font-size: 1rem; border: 1px solid #ccc; border-radius: 4px; }
button { padding: .5rem 1.25rem; font-size: 1rem; border: 0; border-radius: 4px; background: #2563eb; color: #fff; cursor: pointer; }
.error { background: #fee2e2; border: 1px solid #fca5a5; padding: .75rem 1rem; border-radius: 4px; }
section { margin: 1.5rem 0; }
table { border-collapse: collapse; width: 100%; }
td, th { text-align: left; padding: .35rem .75rem; border-bottom: 1px solid #eee; }
.good { color: #15803d; font-weight: 600; }
.bad { color: #b91c1c; font-weight: 600; }
.warn { color: #b45309; font-weight: 600; }
.muted { color: #6b7280; }
.narrative { white-space: pre-wrap; background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 4px; padding: 1rem; }
.headline time { color: #6b7280; font-size: .85rem; margin-right: .5rem; }
</style>
</head>
<body>
<h1>StockScope</h1>
<form method="post" action="/analyze">
<input type="text" name="ticker" placeholder="Ticker (e.g. AAPL)" value="{{.Ticker}}" required>
<input type="text" name="capital" placeholder="Capital (e.g. 1000)" value="{{.Capital}}" required>
<button type="submit">Analyze</button>
</form>

{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

{{with .Result}}
<section>
<h2>{{.Ticker}} &mdash; {{f2 .Technical.Price}} {{.Technical.Currency}}
<span class="{{if lt .Technical.ChangePct 0.0}}bad{{else}}good{{end}}">{{pct .Technical.ChangePct}}</span></h2>
<p class="muted">{{.Technical.Source}} &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
</section>

<section>
<h3>Technical</h3>
<table>
<tr><td>RSI (14)</td><td>{{f1 .Technical.RSI14}}</td><td class="{{signalClass .RSISignal}}">{{.RSIStatus}}</td></tr>
<tr><td>SMA 20 / 50</td><td>{{f2 .Technical.SMA20}} / {{f2 .Technical.SMA50}}</td><td class="{{signalClass .TrendSignal}}">{{.Trend}}</td></tr>
<tr><td>52-week range</td><td>{{f2 .Technical.Low52Week}} &ndash; {{f2 .Technical.High52Week}}</td>
<td>{{if .HasRangePosition}}{{f1 .RangePosition}}% of range{{end}}</td></tr>
</table>
</section>

{{with .Fundamentals}}
<section>
<h3>Fundamentals &mdash; score {{.Score}}/100 ({{.Rating}})</h3>
{{if .Metrics}}
<table>
{{range .Metrics}}<tr><td>{{.Name}}</td><td>{{.Value}}</td><td class="{{signalClass .Signal}}">{{.Assessment}}</td></tr>
{{end}}
</table>
{{else}}<p class="muted">No fundamentals coverage for this ticker.</p>{{end}}
</section>
{{end}}

{{if .News}}
<section>
<h3>Recent headlines</h3>
{{range .News}}<p class="headline"><time>{{.PublishedAt.Format "Jan 02 15:04"}}</time>{{.Headline}} <span class="muted">({{.Source}})</span></p>
{{end}}
</section>
{{end}}

{{if gt .Capital 0.0}}
<section>
<h3>Position</h3>
<p>{{f2 .Capital}} buys <strong>{{f4 .Shares}}</strong> shares at {{f2 .Technical.Price}}.</p>
</section>
{{end}}
{{end}}

{{if .Narrative}}
<section>
<h3>Analysis</h3>
<div class="narrative">{{.Narrative}}</div>
</section>
{{end}}
</body>
</html>`
