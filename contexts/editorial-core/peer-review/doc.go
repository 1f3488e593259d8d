// Package peerreview implements the peer review coordinator inside the
// editorial-core context.
//
// The module owns review rounds for fact-checks in the peer_review workflow
// state: one decision slot per assigned reviewer per round, and the
// deterministic consensus computation over those decisions. Rounds are opened
// and closed by consuming workflow state-change events; the coordinator never
// drives workflow transitions itself.
package peerreview
