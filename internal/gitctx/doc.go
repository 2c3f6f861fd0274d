// Package gitctx wraps the git operations a branch comparison needs.
//
// Checkout detection and remote inspection use go-git; everything that
// touches the network or the object store (remote add/remove, fetch,
// diff name listing, blob show) shells out to the git binary so behaviour
// matches what the user's own git would do.
//
// [Repo.Lock] takes an exclusive file lock inside the git directory so two
// runs cannot fight over the same temporary remote name.
package gitctx
