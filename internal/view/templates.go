package view

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"math"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

// Band maps an overall score to its display band. Every component that
// shows a score goes through this one function.
func Band(score int) string {
	switch {
	case score >= 70:
		return "good"
	case score >= 40:
		return "mid"
	default:
		return "bad"
	}
}

// BandLabel is the human label for a score band.
func BandLabel(score int) string {
	switch Band(score) {
	case "good":
		return "Good day"
	case "mid":
		return "So-so"
	default:
		return "Needs work"
	}
}

var md = goldmark.New()

// renderMarkdown converts the free-text activity log to HTML. On a
// conversion failure the raw text is shown escaped instead.
func renderMarkdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		log.Printf("view: markdown: %v", err)
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

func dateLabel(dateStr string) string {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("Monday, January 2, 2006")
}

func shortDate(dateStr string) string {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("1/2 (Mon)")
}

// truncate keeps the first line of s, capped at n runes.
func truncate(s string, n int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "…"
	}
	return s
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"band":      Band,
		"bandLabel": BandLabel,
		"markdown":  renderMarkdown,
		"dateLabel": dateLabel,
		"shortDate": shortDate,
		"truncate":  truncate,
		"pct": func(rate float64) int {
			return int(math.Round(rate * 100))
		},
		"hours": func(h float64) string {
			return fmt.Sprintf("%.1f", h)
		},
		"hm": func(minutes int) string {
			return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
		},
		"pctOf": func(part, total int) int {
			if total <= 0 {
				return 0
			}
			return int(math.Round(float64(part) / float64(total) * 100))
		},
		"dict": func(pairs ...any) map[string]any {
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					continue
				}
				m[key] = pairs[i+1]
			}
			return m
		},
	}
}

var templates = template.Must(template.New("views").Funcs(funcMap()).Parse(viewTemplates))

// render executes a named template; template failures surface as an
// inline error card rather than a blank region.
func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("view: rendering %s: %v", name, err)
		return `<div class="empty-state"><div class="icon">⚠️</div><p>Rendering failed.</p></div>`
	}
	return buf.String()
}

const viewTemplates = `
{{define "loading"}}
<div class="loading"><div class="spinner"></div><p>{{.}}</p></div>
{{end}}

{{define "notfound"}}
<div class="empty-state">
  <div class="icon">🔍</div>
  <p>Page not found.</p>
  <a class="btn btn-outline" href="/app/">Back home</a>
</div>
{{end}}

{{define "error_state"}}
<div class="empty-state">
  <div class="icon">⚠️</div>
  <p>Something went wrong: {{.}}</p>
  <a class="btn btn-outline" href="/app/">Back home</a>
</div>
{{end}}

{{define "home"}}
<div class="home-date">{{dateLabel .Date}}</div>
<h1 class="home-title">Today's activity</h1>
{{if .HasAnalysis}}
<div class="card">
  <div class="card-title">Today's score</div>
  <div class="score-circle {{band .Analysis.Summary.OverallScore}}">
    <span class="score-value">{{.Analysis.Summary.OverallScore}}</span>
    <span class="score-label">{{bandLabel .Analysis.Summary.OverallScore}}</span>
  </div>
  <div class="stats-grid">
    <div class="stat-item"><div class="stat-value">{{hours .Analysis.Summary.ProductiveHours}}</div><div class="stat-label">Productive (h)</div></div>
    <div class="stat-item"><div class="stat-value">{{hours .Analysis.Summary.WastedHours}}</div><div class="stat-label">Wasted (h)</div></div>
    <div class="stat-item"><div class="stat-value">{{pct .Analysis.Summary.TaskCompletionRate}}%</div><div class="stat-label">Tasks done</div></div>
  </div>
  <a class="btn btn-outline btn-sm" href="/app/analysis/{{.Date}}">See details →</a>
</div>
{{end}}
{{if not .HasRecord}}
<div class="card">
  <div class="card-title">Today's log</div>
  <div class="empty-state inline">
    <div class="icon">✏️</div>
    <p>Nothing logged for today yet.</p>
  </div>
  <a class="btn btn-primary" href="/app/input">Log your day</a>
</div>
{{else if not .HasAnalysis}}
<div class="card">
  <div class="card-title">Today's log</div>
  <div class="log-preview">{{markdown .RawInput}}</div>
  <p class="muted">Your log is saved. Run the analysis when you're ready.</p>
  <form method="post" action="/app/analysis/{{.Date}}/generate">
    <button class="btn btn-primary" type="submit">🤖 Analyze my day</button>
  </form>
</div>
{{else}}
<div class="card">
  <div class="card-title">Actions</div>
  <div class="action-row">
    <a class="btn btn-outline btn-sm" href="/app/input">Edit log</a>
    <form method="post" action="/app/analysis/{{.Date}}/generate">
      <button class="btn btn-outline btn-sm" type="submit">Re-run analysis</button>
    </form>
  </div>
</div>
{{end}}
{{end}}

{{define "list_section"}}
{{if .Items}}
<div class="card">
  <div class="analysis-section">
    <h3>{{.Title}}</h3>
    <ul class="analysis-list {{.Class}}">
      {{range .Items}}<li>{{.}}</li>{{end}}
    </ul>
  </div>
</div>
{{end}}
{{end}}

{{define "analysis"}}
<div class="view-header">
  <h2>Analysis</h2>
  <a class="btn btn-outline btn-sm" href="/app/input/{{.A.Date}}">Edit log</a>
</div>
<p class="muted">{{dateLabel .A.Date}}</p>
<div class="card">
  <div class="card-title">Overall score</div>
  <div class="score-circle {{band .A.Summary.OverallScore}}">
    <span class="score-value">{{.A.Summary.OverallScore}}</span>
    <span class="score-label">{{bandLabel .A.Summary.OverallScore}}</span>
  </div>
  <div class="stats-grid">
    <div class="stat-item"><div class="stat-value">{{hours .A.Summary.ProductiveHours}}<small>h</small></div><div class="stat-label">Productive</div></div>
    <div class="stat-item"><div class="stat-value">{{hours .A.Summary.WastedHours}}<small>h</small></div><div class="stat-label">Wasted</div></div>
    <div class="stat-item"><div class="stat-value">{{hours .A.Summary.YoutubeHours}}<small>h</small></div><div class="stat-label">YouTube</div></div>
    <div class="stat-item"><div class="stat-value">{{pct .A.Summary.TaskCompletionRate}}<small>%</small></div><div class="stat-label">Tasks done</div></div>
  </div>
</div>
{{template "list_section" (dict "Title" "✅ What went well" "Items" .A.Analysis.GoodPoints "Class" "good")}}
{{template "list_section" (dict "Title" "❌ What needs work" "Items" .A.Analysis.BadPoints "Class" "bad")}}
{{template "list_section" (dict "Title" "🔍 Root causes" "Items" .A.Analysis.RootCauses "Class" "cause")}}
{{template "list_section" (dict "Title" "🧠 Thinking patterns" "Items" .A.Analysis.ThinkingWeaknesses "Class" "cause")}}
{{template "list_section" (dict "Title" "🔄 Behavior patterns" "Items" .A.Analysis.BehaviorWeaknesses "Class" "cause")}}
{{if .A.Analysis.ImprovementSuggestions}}
<div class="card">
  <div class="analysis-section">
    <h3>💡 Suggestions</h3>
    {{range .A.Analysis.ImprovementSuggestions}}
    <div class="suggestion-card {{.Priority}}">
      <div class="suggestion-meta">
        <span class="badge badge-{{.Priority}}">priority: {{.Priority}}</span>
        <span class="badge badge-cat">{{.Category}}</span>
      </div>
      <p class="suggestion-text">{{.Suggestion}}</p>
    </div>
    {{end}}
  </div>
</div>
{{end}}
{{if or .A.Analysis.ComparisonWithPast.RecurringPatterns .A.Analysis.ComparisonWithPast.ImprovementsFromLastWeek}}
<div class="card">
  <div class="analysis-section">
    <h3>📈 Compared with before</h3>
    {{if .A.Analysis.ComparisonWithPast.RecurringPatterns}}
    <p class="muted small">Recurring patterns</p>
    <ul class="analysis-list bad">{{range .A.Analysis.ComparisonWithPast.RecurringPatterns}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
    {{if .A.Analysis.ComparisonWithPast.ImprovementsFromLastWeek}}
    <p class="muted small">Improvements since last week</p>
    <ul class="analysis-list good">{{range .A.Analysis.ComparisonWithPast.ImprovementsFromLastWeek}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
  </div>
</div>
{{end}}
<div class="card">
  <form method="post" action="/app/analysis/{{.A.Date}}/generate">
    <button class="btn btn-outline btn-sm wide" type="submit">🔄 Re-run analysis</button>
  </form>
</div>
{{end}}

{{define "analysis_empty"}}
<div class="empty-state">
  <div class="icon">{{if .NotFound}}📊{{else}}⚠️{{end}}</div>
  {{if .NotFound}}
  <p>No analysis has been generated for this day yet.</p>
  <form method="post" action="/app/analysis/{{.Date}}/generate">
    <button class="btn btn-primary" type="submit">🤖 Analyze now</button>
  </form>
  <a class="btn btn-outline" href="/app/input/{{.Date}}">Log this day</a>
  {{else}}
  <p>Something went wrong: {{.Message}}</p>
  <a class="btn btn-outline" href="/app/">Back home</a>
  {{end}}
</div>
{{end}}

{{define "history"}}
<h2>History</h2>
<div class="card">
  <div class="card-title">Calendar — {{.Calendar.MonthLabel}}</div>
  <div class="calendar-grid">
    {{range .Calendar.Weekdays}}<div class="cal-header">{{.}}</div>{{end}}
    {{range .Calendar.Blanks}}<div class="cal-cell empty"></div>{{end}}
    {{range .Calendar.Cells}}
    <a class="{{.Class}}" href="{{.Link}}" title="{{.Date}}{{if .Score}} score {{.Score}}{{end}}">
      <span class="cal-day">{{.Day}}</span>
      {{if .Score}}<span class="cal-score">{{.Score}}</span>{{end}}
    </a>
    {{end}}
  </div>
  <div class="cal-legend">
    <span class="legend-item score-good-bg">70+ good</span>
    <span class="legend-item score-mid-bg">40–69 so-so</span>
    <span class="legend-item score-bad-bg">under 40</span>
    <span class="legend-item has-record-bg">log only</span>
  </div>
</div>
<div class="card">
  <div class="card-title">Entries (latest {{len .Items}})</div>
  <div class="history-list">
    {{range .Items}}
    <a class="history-item" href="/app/analysis/{{.Date}}">
      <div class="history-date">{{shortDate .Date}}</div>
      <div class="history-body">
        <div class="history-preview">{{truncate .Preview 60}}</div>
        {{if gt .CompletionPct 0}}<div class="history-meta">tasks done: {{.CompletionPct}}%</div>{{end}}
      </div>
      {{if .Score}}<div class="history-score {{band .ScoreValue}}">{{.Score}}</div>{{else}}<div class="history-score no-score">-</div>{{end}}
    </a>
    {{end}}
  </div>
</div>
{{end}}

{{define "history_empty"}}
<h2>History</h2>
<div class="empty-state">
  <div class="icon">📅</div>
  <p>No entries yet. Log a day to get started.</p>
  <a class="btn btn-primary" href="/app/input">Log your day</a>
</div>
{{end}}

{{define "weekly"}}
<div class="view-header">
  <h2>Weekly report</h2>
  <form method="post" action="/app/weekly/{{.WeekID}}/generate">
    <button class="btn btn-outline btn-sm" type="submit">🔄 Regenerate</button>
  </form>
</div>
<p class="muted">{{.WeekID}} ({{shortDate .R.WeekStart}} – {{shortDate .R.WeekEnd}})</p>
<div class="card">
  <div class="card-title">Week summary</div>
  <div class="score-circle {{band .R.WeeklySummary.AvgOverallScore}}">
    <span class="score-value">{{.R.WeeklySummary.AvgOverallScore}}</span>
    <span class="score-label">weekly average</span>
  </div>
  <div class="stats-grid">
    <div class="stat-item"><div class="stat-value">{{hours .R.WeeklySummary.AvgProductiveHours}}<small>h</small></div><div class="stat-label">Avg productive</div></div>
    <div class="stat-item"><div class="stat-value">{{hours .R.WeeklySummary.AvgWastedHours}}<small>h</small></div><div class="stat-label">Avg wasted</div></div>
    <div class="stat-item"><div class="stat-value">{{hours .R.WeeklySummary.TotalYoutubeHours}}<small>h</small></div><div class="stat-label">YouTube total</div></div>
    <div class="stat-item"><div class="stat-value">{{pct .R.WeeklySummary.AvgTaskCompletionRate}}<small>%</small></div><div class="stat-label">Tasks done</div></div>
  </div>
  <div class="trend">{{.TrendIcon}} {{.TrendLabel}}</div>
</div>
{{if .R.DeepAnalysis.WeeklyPattern}}
<div class="card">
  <div class="card-title">Pattern of the week</div>
  <p>{{.R.DeepAnalysis.WeeklyPattern}}</p>
</div>
{{end}}
{{if .R.DeepAnalysis.BiggestTimeWasters}}
<div class="card">
  <div class="card-title">⏰ Biggest time sinks</div>
  {{range .R.DeepAnalysis.BiggestTimeWasters}}
  <div class="suggestion-card high">
    <div class="suggestion-meta">
      <span class="waster-name">{{.Activity}}</span>
      <span class="badge badge-high">{{hours .TotalHours}}h</span>
    </div>
    <p class="muted small">trigger: {{.Trigger}}</p>
  </div>
  {{end}}
</div>
{{end}}
{{template "list_section" (dict "Title" "🧠 Cognitive patterns" "Items" .R.DeepAnalysis.CognitivePatterns "Class" "cause")}}
{{if or .R.DeepAnalysis.ImprovementPlan.NextWeekGoals .R.DeepAnalysis.ImprovementPlan.ConcreteActions .R.DeepAnalysis.ImprovementPlan.HabitBuilding}}
<div class="card">
  <div class="card-title">📋 Plan for next week</div>
  {{if .R.DeepAnalysis.ImprovementPlan.NextWeekGoals}}
  <p class="muted small">Goals</p>
  <ul class="analysis-list tip">{{range .R.DeepAnalysis.ImprovementPlan.NextWeekGoals}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .R.DeepAnalysis.ImprovementPlan.ConcreteActions}}
  <p class="muted small">Concrete actions</p>
  <ul class="analysis-list tip">{{range .R.DeepAnalysis.ImprovementPlan.ConcreteActions}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .R.DeepAnalysis.ImprovementPlan.HabitBuilding}}
  <p class="muted small">Habit building</p>
  <ul class="analysis-list good">{{range .R.DeepAnalysis.ImprovementPlan.HabitBuilding}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
</div>
{{end}}
{{if or .R.DeepAnalysis.ProgressVsLastWeek.Improved .R.DeepAnalysis.ProgressVsLastWeek.Declined .R.DeepAnalysis.ProgressVsLastWeek.Unchanged}}
<div class="card">
  <div class="card-title">📊 Versus last week</div>
  {{if .R.DeepAnalysis.ProgressVsLastWeek.Improved}}
  <p class="muted small">✅ Improved</p>
  <ul class="analysis-list good">{{range .R.DeepAnalysis.ProgressVsLastWeek.Improved}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .R.DeepAnalysis.ProgressVsLastWeek.Declined}}
  <p class="muted small">❌ Declined</p>
  <ul class="analysis-list bad">{{range .R.DeepAnalysis.ProgressVsLastWeek.Declined}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .R.DeepAnalysis.ProgressVsLastWeek.Unchanged}}
  <p class="muted small">➡️ Unchanged</p>
  <ul class="analysis-list">{{range .R.DeepAnalysis.ProgressVsLastWeek.Unchanged}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
</div>
{{end}}
<div class="card">
  <div class="action-row">
    <a class="btn btn-outline btn-sm" href="/app/weekly/{{.PrevID}}">← Previous week</a>
    <a class="btn btn-outline btn-sm" href="/app/weekly/{{.NextID}}">Next week →</a>
  </div>
</div>
{{end}}

{{define "weekly_empty"}}
<h2>Weekly report</h2>
<p class="muted">{{.WeekID}}</p>
<div class="empty-state">
  <div class="icon">📊</div>
  <p>No report has been generated for this week yet.<br>Run the analysis once the daily logs are in.</p>
  <form method="post" action="/app/weekly/{{.WeekID}}/generate">
    <button class="btn btn-primary" type="submit">🤖 Generate weekly report</button>
  </form>
</div>
<div class="card">
  <div class="action-row">
    <a class="btn btn-outline btn-sm" href="/app/weekly/{{.PrevID}}">← Previous week</a>
    <a class="btn btn-outline btn-sm" href="/app/weekly/{{.NextID}}">Next week →</a>
  </div>
</div>
{{end}}

{{define "suggestion_items"}}
{{if not .}}
<div class="empty-state inline">
  <div class="icon">🔍</div>
  <p>No suggestions match the current filters.</p>
</div>
{{end}}
{{range .}}
<a class="card suggestion-card {{.Priority}}" href="/app/analysis/{{.Date}}">
  <div class="suggestion-meta">
    <span class="badge badge-{{.Priority}}">priority: {{.Priority}}</span>
    <span class="badge badge-cat">{{.Category}}</span>
    <span class="suggestion-date">{{shortDate .Date}}</span>
  </div>
  <p class="suggestion-text">{{.Text}}</p>
  {{if .Score}}<div class="suggestion-score muted small">that day's score: {{.Score}}</div>{{end}}
</a>
{{end}}
{{end}}

{{define "suggestions"}}
<h2>Suggestions archive</h2>
<p class="muted">{{.Total}} suggestions from {{.Days}} analyzed days</p>
<div class="card">
  <div class="summary-row">
    <span class="badge badge-high">high</span> <strong>{{.High}}</strong>
    <span class="badge badge-medium">medium</span> <strong>{{.Medium}}</strong>
    <span class="badge badge-low">low</span> <strong>{{.Low}}</strong>
  </div>
</div>
<div class="card">
  <div class="card-title">Filters</div>
  <form method="post" action="/app/suggestions/filter">
    <label class="small">Priority</label>
    <div class="filter-btn-group">
      {{$p := .Priority}}
      {{range $val := .PriorityOptions}}
      <button class="filter-btn{{if eq $p $val}} active{{end}}" name="priority" value="{{$val}}" type="submit">{{$val}}</button>
      {{end}}
    </div>
    <input type="hidden" name="category" value="{{.Category}}">
  </form>
  <form method="post" action="/app/suggestions/filter">
    <label class="small">Category</label>
    <div class="filter-btn-group">
      {{$c := .Category}}
      <button class="filter-btn{{if eq $c "all"}} active{{end}}" name="category" value="all" type="submit">all</button>
      {{range $cat := .Categories}}
      <button class="filter-btn{{if eq $c $cat}} active{{end}}" name="category" value="{{$cat}}" type="submit">{{$cat}}</button>
      {{end}}
    </div>
    <input type="hidden" name="priority" value="{{.Priority}}">
  </form>
</div>
<div id="suggestions-list">
{{template "suggestion_items" .Items}}
</div>
{{end}}

{{define "suggestions_empty"}}
<h2>Suggestions archive</h2>
<div class="empty-state">
  <div class="icon">💡</div>
  <p>No analysis data yet.<br>Log your days and run the AI analysis first.</p>
  <a class="btn btn-primary" href="/app/input">Log your day</a>
</div>
{{end}}

{{define "upload"}}
<div class="upload-area">
  {{if eq .State "placeholder"}}
  <form method="post" action="/app/screenshots/{{.Date}}/preview" enctype="multipart/form-data" class="upload-placeholder">
    <div class="icon">📱</div>
    <p class="muted small">Upload your screen-time screenshot<br>(pick a file or drop it here)</p>
    <input type="file" name="file" accept="image/jpeg,image/png,image/heic,image/heif,image/webp">
    <button class="btn btn-outline btn-sm" type="submit">Choose image</button>
  </form>
  {{else if eq .State "preview"}}
  <img class="upload-preview-img" src="{{.PreviewDataURL}}" alt="screenshot preview">
  <div class="action-row">
    <form method="post" action="/app/screenshots/{{.Date}}">
      <button class="btn btn-primary btn-sm" type="submit">📤 Extract screen time</button>
    </form>
    <form method="post" action="/app/screenshots/{{.Date}}/reset">
      <button class="btn btn-outline btn-sm" type="submit">Start over</button>
    </form>
  </div>
  {{else}}
  <div class="ocr-result">
    <div class="upload-result-head">
      <span class="muted small">Result <span class="badge badge-cat">confidence: {{.Result.ExtractionConfidence}}</span></span>
      <span class="muted small">total: {{hm .Result.TotalScreenTimeMinutes}}</span>
    </div>
    <ul class="app-usage">
      {{$total := .Result.TotalScreenTimeMinutes}}
      {{range .Result.Apps}}
      <li>
        <span class="app-name">{{.Name}}</span>
        <div class="usage-bar"><div class="usage-fill" style="width:{{pctOf .DurationMinutes $total}}%"></div></div>
        <span class="muted small">{{hm .DurationMinutes}}</span>
      </li>
      {{end}}
    </ul>
    <form method="post" action="/app/screenshots/{{.Date}}/reset">
      <button class="btn btn-outline btn-sm wide" type="submit">Try another image</button>
    </form>
  </div>
  {{end}}
</div>
{{end}}

{{define "input"}}
<h2>{{if .EditMode}}Edit entry{{else}}Log your day{{end}}</h2>
<p class="muted">{{dateLabel .Date}}</p>
<div class="card">
  <div class="card-title">Activity log</div>
  <form method="post" action="/app/records/{{.Date}}" id="record-form">
    <div class="form-group">
      <label for="raw-input">Write down what you did today</label>
      <textarea id="raw-input" name="raw_input" placeholder="8:00 wake up&#10;9:00-12:00 work (proposal draft)&#10;13:00-14:30 YouTube&#10;15:00-18:00 code review">{{.RawInput}}</textarea>
    </div>
  </form>
</div>
<div class="card">
  <div class="card-title">Tasks</div>
  <ul class="task-list">
    {{$date := .Date}}
    {{range $i, $t := .Tasks}}
    <li class="task-item{{if $t.Completed}} completed{{end}}">
      <form method="post" action="/app/records/{{$date}}/tasks/toggle">
        <input type="hidden" name="index" value="{{$i}}">
        <button class="task-toggle" type="submit">{{if $t.Completed}}☑{{else}}☐{{end}}</button>
      </form>
      <span>{{$t.Text}}</span>
      <form method="post" action="/app/records/{{$date}}/tasks/remove">
        <input type="hidden" name="index" value="{{$i}}">
        <button class="task-remove" type="submit" title="remove">✕</button>
      </form>
    </li>
    {{end}}
  </ul>
  <form method="post" action="/app/records/{{.Date}}/tasks" class="task-input-row">
    <input type="text" name="text" placeholder="Add a task...">
    <button class="btn btn-outline btn-sm" type="submit">Add</button>
  </form>
</div>
<div class="card">
  <div class="card-title">Screen time</div>
  {{template "upload" .Upload}}
</div>
<div class="card">
  <button class="btn btn-primary" type="submit" form="record-form">{{if .EditMode}}✏️ Update entry{{else}}💾 Save entry{{end}}</button>
  {{if .EditMode}}
  <div class="action-row">
    <form method="post" action="/app/analysis/{{.Date}}/generate">
      <button class="btn btn-outline btn-sm" type="submit">🤖 Analyze with AI</button>
    </form>
    <a class="btn btn-outline btn-sm" href="/app/analysis/{{.Date}}">📊 View analysis</a>
  </div>
  {{end}}
</div>
{{end}}
`
