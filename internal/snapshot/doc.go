// Package snapshot materializes the two revisions of a changed file into a
// temporary directory so an external viewer can open them side by side.
//
// Layout beneath the workspace root:
//
//	remote/<path>   content at <remote>/<branch>
//	local/<path>    content at <local branch>
package snapshot
