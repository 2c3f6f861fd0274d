// Package compare runs one branch comparison: register and fetch the
// remote branch, list changed files under a folder, snapshot both sides of
// each file and hand every pair to a diff viewer.
//
// The remote registration is scoped to [Engine.Run]; it is released on
// every return path, including cancellation. By default the first failing
// file aborts the run. [Options.ContinueOnError] changes that to
// process every file and join the failures.
package compare
