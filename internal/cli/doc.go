// Package cli wires together the Cobra command tree for the branchdiff
// binary.
//
// The root command runs a comparison: it checks the working directory is a
// git checkout, resolves configuration (flags, config file, interactive
// prompts), and drives the compare engine. Subcommands cover version and
// config management. [Run] returns the process exit code.
package cli
