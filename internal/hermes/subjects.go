package hermes

const (
	SubjectComparisonRequest = "coverage.comparison.request"
	SubjectStats             = "coverage.stats"

	StreamName   = "COVERAGE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// StreamSubjects are captured by the COVERAGE_EVENTS stream.
var StreamSubjects = []string{"coverage.>"}

func SubjectComparisonCreated(id string) string  { return "coverage.comparison." + id + ".created" }
func SubjectComparisonAnalyzed(id string) string { return "coverage.comparison." + id + ".analyzed" }
func SubjectComparisonDeleted(id string) string  { return "coverage.comparison." + id + ".deleted" }
