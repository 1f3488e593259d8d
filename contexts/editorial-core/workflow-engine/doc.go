// Package workflowengine implements the submission lifecycle engine inside
// the editorial-core context.
//
// The module owns the fact-check workflow state machine: the transition edge
// table with role gates and mandatory reasons, the append-only workflow
// history, and state-change event production through the outbox relay. It
// keeps business rules in application/domain layers and isolates
// infrastructure concerns behind ports and adapters.
package workflowengine
