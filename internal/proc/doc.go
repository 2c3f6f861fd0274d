// Package proc runs external commands and reports their failures as
// [ExitError] values that keep the command line, exit status and stderr.
//
// Both the git wrapper and the editor launcher go through this package so
// the CLI can propagate the failing command's exit code unchanged.
package proc
