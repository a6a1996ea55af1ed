// Package validation implements the username, email and password policies
// checked before a user is created or updated.
package validation

import "strings"

// Result is the outcome of a policy check. A result without errors succeeded.
type Result struct {
	Errors []string
}

// Success is the result of a check with no violations.
var Success = Result{}

// Failed builds a result carrying the given violation messages.
func Failed(errors ...string) Result {
	return Result{Errors: errors}
}

// Succeeded reports whether no policy was violated.
func (r Result) Succeeded() bool {
	return len(r.Errors) == 0
}

// String joins the violation messages with a space.
func (r Result) String() string {
	return strings.Join(r.Errors, " ")
}
