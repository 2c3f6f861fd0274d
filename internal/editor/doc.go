// Package editor launches an external two-file diff viewer.
//
// A viewer is named by preset ([Presets]) or given as a command line using
// {local} and {remote} placeholders. Command lines follow shell quoting, so
// an executable path with spaces can be quoted.
package editor
