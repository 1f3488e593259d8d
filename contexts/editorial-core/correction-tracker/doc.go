// Package correctiontracker manages post-publication correction requests:
// public intake against published fact-checks, SLA-ordered triage, the
// accept/reject/apply lifecycle, and the gapless per-fact-check version
// chain of applied corrections.
package correctiontracker
