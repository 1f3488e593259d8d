// Package submissionservice receives claim submissions and manages their
// reviewer assignments. Submissions are never deleted; the reviewer set is
// the only mutable part and feeds the peer review coordinator's directory.
package submissionservice
