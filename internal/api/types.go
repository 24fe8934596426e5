package api

// Activity is one structured entry parsed out of the free-text log by
// the backend.
type Activity struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time,omitempty"`
	Activity     string `json:"activity"`
	Category     string `json:"category"`
	IsProductive bool   `json:"is_productive"`
}

// ScreenTimeApp is per-app usage extracted from a screenshot.
type ScreenTimeApp struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ScreenTime is the full screen-time extraction result.
type ScreenTime struct {
	RawImageURL            string          `json:"raw_image_url,omitempty"`
	Apps                   []ScreenTimeApp `json:"apps"`
	TotalScreenTimeMinutes int             `json:"total_screen_time_minutes"`
	ExtractionConfidence   string          `json:"extraction_confidence,omitempty"`
}

// Tasks holds a day's planned and completed task lists. Completed is a
// subset of planned, matched by text.
type Tasks struct {
	Planned        []string `json:"planned"`
	Completed      []string `json:"completed"`
	CompletionRate float64  `json:"completion_rate"`
}

// Record is one day's logged activity as stored by the backend.
type Record struct {
	ID               string      `json:"id"`
	Date             string      `json:"date"`
	RawInput         string      `json:"raw_input"`
	ParsedActivities []Activity  `json:"parsed_activities,omitempty"`
	ScreenTime       *ScreenTime `json:"screen_time,omitempty"`
	Tasks            Tasks       `json:"tasks"`
	CreatedAt        string      `json:"created_at,omitempty"`
	UpdatedAt        string      `json:"updated_at,omitempty"`
}

// RecordUpdate is the PUT payload for an existing record. Both fields
// are always sent: dropping tasks_completed would make the backend keep
// its stored list, so un-completing every task must serialize as [].
type RecordUpdate struct {
	RawInput       string   `json:"raw_input"`
	TasksCompleted []string `json:"tasks_completed"`
}

// ImprovementSuggestion is one prioritized suggestion within a daily
// analysis. Priority is high, medium or low.
type ImprovementSuggestion struct {
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
	Category   string `json:"category"`
}

// ComparisonWithPast lists patterns carried over from earlier days.
type ComparisonWithPast struct {
	RecurringPatterns        []string `json:"recurring_patterns"`
	ImprovementsFromLastWeek []string `json:"improvements_from_last_week"`
}

// AnalysisDetail is the categorized text portion of a daily analysis.
type AnalysisDetail struct {
	GoodPoints             []string                `json:"good_points"`
	BadPoints              []string                `json:"bad_points"`
	RootCauses             []string                `json:"root_causes"`
	ThinkingWeaknesses     []string                `json:"thinking_weaknesses"`
	BehaviorWeaknesses     []string                `json:"behavior_weaknesses"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions"`
	ComparisonWithPast     ComparisonWithPast      `json:"comparison_with_past"`
}

// AnalysisSummary is the numeric portion of a daily analysis.
type AnalysisSummary struct {
	ProductiveHours    float64 `json:"productive_hours"`
	WastedHours        float64 `json:"wasted_hours"`
	YoutubeHours       float64 `json:"youtube_hours"`
	TaskCompletionRate float64 `json:"task_completion_rate"`
	OverallScore       int     `json:"overall_score"`
}

// Analysis is the AI-derived summary for a single day.
type Analysis struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Summary   AnalysisSummary `json:"summary"`
	Analysis  AnalysisDetail  `json:"analysis"`
	CreatedAt string          `json:"created_at,omitempty"`
}

// WeeklySummary carries the averaged metrics of a weekly report.
type WeeklySummary struct {
	AvgOverallScore       int     `json:"avg_overall_score"`
	AvgProductiveHours    float64 `json:"avg_productive_hours"`
	AvgWastedHours        float64 `json:"avg_wasted_hours"`
	TotalYoutubeHours     float64 `json:"total_youtube_hours"`
	AvgTaskCompletionRate float64 `json:"avg_task_completion_rate"`
	ScoreTrend            string  `json:"score_trend"` // improving, declining, stable
}

// TimeWaster names one recurring drain on the week's hours.
type TimeWaster struct {
	Activity   string  `json:"activity"`
	TotalHours float64 `json:"total_hours"`
	Trigger    string  `json:"trigger"`
}

// ImprovementPlan is the coming week's plan within a weekly report.
type ImprovementPlan struct {
	NextWeekGoals   []string `json:"next_week_goals"`
	ConcreteActions []string `json:"concrete_actions"`
	HabitBuilding   []string `json:"habit_building"`
}

// WeeklyProgress compares the week against the previous one.
type WeeklyProgress struct {
	Improved  []string `json:"improved"`
	Declined  []string `json:"declined"`
	Unchanged []string `json:"unchanged"`
}

// DeepAnalysis is the narrative portion of a weekly report.
type DeepAnalysis struct {
	WeeklyPattern      string          `json:"weekly_pattern"`
	BiggestTimeWasters []TimeWaster    `json:"biggest_time_wasters"`
	CognitivePatterns  []string        `json:"cognitive_patterns"`
	ImprovementPlan    ImprovementPlan `json:"improvement_plan"`
	ProgressVsLastWeek WeeklyProgress  `json:"progress_vs_last_week"`
}

// WeeklyReport is the aggregated analysis for one ISO week.
type WeeklyReport struct {
	ID            string        `json:"id"`
	WeekID        string        `json:"week_id"`
	WeekStart     string        `json:"week_start"`
	WeekEnd       string        `json:"week_end"`
	WeeklySummary WeeklySummary `json:"weekly_summary"`
	DeepAnalysis  DeepAnalysis  `json:"deep_analysis"`
	CreatedAt     string        `json:"created_at,omitempty"`
}

// screenshotResponse wraps the screenshot OCR endpoint's payload.
type screenshotResponse struct {
	ScreenTime ScreenTime `json:"screen_time"`
}
