// Package output renders comparison results and user-facing progress.
//
// Two summary formats are supported:
//   - text: a table of changed files and their snapshot paths (default)
//   - json: the full run result
//
// Use [GetWriter] to obtain a [Writer] for a format string. [Progress]
// implements the comparison progress hooks with a terminal spinner, and
// [Banner] renders the welcome box printed at startup.
package output
