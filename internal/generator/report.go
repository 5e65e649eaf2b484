package generator

import "time"

// ServiceResult is the outcome of one service's extraction.
type ServiceResult struct {
	Service            string
	Version            string
	Commands           int
	Failed             int
	SkippedMembers     int
	ValidationErrors   int
	ValidationWarnings int
	LoadError          error
}

// Report aggregates one generation run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Services  []*ServiceResult
}

// Commands returns the total number of written command documents.
func (r *Report) Commands() int {
	total := 0
	for _, s := range r.Services {
		total += s.Commands
	}
	return total
}

// FailedOperations returns the number of operations that produced no
// command document.
func (r *Report) FailedOperations() int {
	total := 0
	for _, s := range r.Services {
		total += s.Failed
	}
	return total
}

// SkippedMembers returns the number of members dropped from otherwise
// usable schemas.
func (r *Report) SkippedMembers() int {
	total := 0
	for _, s := range r.Services {
		total += s.SkippedMembers
	}
	return total
}

// ValidationErrors returns the total validator error count.
func (r *Report) ValidationErrors() int {
	total := 0
	for _, s := range r.Services {
		total += s.ValidationErrors
	}
	return total
}

// ValidationWarnings returns the total validator warning count.
func (r *Report) ValidationWarnings() int {
	total := 0
	for _, s := range r.Services {
		total += s.ValidationWarnings
	}
	return total
}

// HasErrors reports whether anything in the run failed: a service that
// could not be loaded, a failed operation, or a validator error.
func (r *Report) HasErrors() bool {
	for _, s := range r.Services {
		if s.LoadError != nil || s.Failed > 0 || s.ValidationErrors > 0 {
			return true
		}
	}
	return false
}
