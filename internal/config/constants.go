package config

// Application info
const (
	AppName    = "homequest-analytics"
	AppVersion = "0.3.0"
)

// Default settings
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultEventRetentionDays    = 90
	DefaultStaleScoreMinutes     = 24 * 60
	DefaultDedupWindowSeconds    = 60
	DefaultRecalcIntervalMinutes = 60
	DefaultSnapshotIntervalHours = 24
	DefaultCleanupIntervalHours  = 24

	DefaultTemporalNamespace = "homequest"
	DefaultTemporalTaskQueue = "homequest-analytics"
)

// Scheduler backends
const (
	BackendTicker   = "ticker"
	BackendTemporal = "temporal"
)

// CurriculumLessonTarget approximates the number of lessons in the full
// curriculum. The velocity-vs-timeline signal uses it to estimate the pace a
// user needs to finish before their stated purchase timeline. It is a rough
// constant, not derived from actual curriculum size.
const CurriculumLessonTarget = 30
