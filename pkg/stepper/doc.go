// Package stepper runs multi-step forms. A Machine tracks the current step and
// the set of completed steps, validates only the current step's fields before
// advancing (according to the step Policy), and persists its position through
// a Store so an interrupted session can resume within a staleness window.
// Unreadable or stale saved progress is discarded and the machine starts over.
package stepper
