// Branchdiff opens per-file diffs between a local branch and a branch of a
// remote repository, restricted to one folder.
//
// It registers the remote under a temporary name, fetches the branch, lists
// the changed files and hands each pair of revisions to an external diff
// viewer. Values not given as flags or in the config file are prompted for.
//
// Usage:
//
//	branchdiff --repository URL --main-branch main --local-branch dev --target-folder src
//	branchdiff --editor meld                # use a different diff viewer
//	branchdiff --editor 'difft {local} {remote}'
//	branchdiff config init                  # write a default config file
//	branchdiff version
package main
