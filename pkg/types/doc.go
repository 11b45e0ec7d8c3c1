// Package types defines the value types carried by the trainyard containers
// (cargo, tracks, journal events), the shell configuration, and the standard
// error values every container reports.
//
// Containers live under internal/ and never expose their nodes; callers see
// only the values defined here and the summaries each container returns.
package types
