package validate

// Severity indicates the importance level of a validation issue.
type Severity int

const (
	// SeverityWarning marks drift or incompleteness that does not block generation.
	SeverityWarning Severity = iota + 1
	// SeverityError marks a structural violation that blocks trustworthy output.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Scope    string // Module or article id the issue belongs to; empty when unknown
	Rule     string // Rule identifier (e.g., "article-not-found")
	Message  string
	File     string // Article file from the outline, when relevant
}

// Status is the terminal state of a validation run.
type Status int

const (
	StatusPassed Status = iota
	StatusPassedWithWarnings
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusPassedWithWarnings:
		return "passed with warnings"
	default:
		return "failed"
	}
}

// Result contains all issues found during one validation run.
type Result struct {
	Issues       []Issue
	ModuleCount  int // Distinct module ids seen
	ArticleCount int // Distinct article ids seen
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Status derives the terminal state: any error fails the run, warnings alone pass with warnings.
func (r *Result) Status() Status {
	switch {
	case r.HasErrors():
		return StatusFailed
	case r.HasWarnings():
		return StatusPassedWithWarnings
	default:
		return StatusPassed
	}
}

// IDSet is a set of ids.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Seen holds the duplicate-tracking sets of one validation run.
type Seen struct {
	Modules  IDSet
	Articles IDSet
}

// NewSeen returns empty tracking sets.
func NewSeen() Seen {
	return Seen{Modules: IDSet{}, Articles: IDSet{}}
}
