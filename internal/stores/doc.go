// Package stores holds the client-side state: the session, the comparison set and the wishlist.
//
// # Comparison
//
// [ComparisonStore] keeps up to [MaxComparison] cars, unique by id, and writes the full set
// as a JSON array to the [Slot] under [ComparisonKey] on every mutation. No network is involved.
// A missing or corrupt stored value starts the store empty.
//
// # Wishlist
//
// [WishlistStore] mirrors the server's list. It moves Unauthenticated → Loading → Ready when a session
// starts and back to Unauthenticated when it ends. Add and Remove call the remote and then refetch.
// A failed fetch leaves an empty, Ready list.
//
// # Session
//
// [Session] persists the access token under [TokenKey], reads the JWT exp claim to skip
// expired tokens, and notifies observers on login and logout.
//
// # Provider
//
// [Provider] is built once at startup and passed to the CLI and TUI instead of package-level state.
//
// Every mutation returns a [models.Result]; failures carry one of the shared sentinel errors:
//   - [shared.ErrCapacityExceeded], [shared.ErrDuplicate] : comparison limits
//   - [shared.ErrUnauthenticated], [shared.ErrAlreadyPresent] : wishlist preconditions
//   - [shared.ErrRemoteFailure] : the backend call failed
//   - [shared.ErrPersistence] : the slot write failed, the in-memory change is kept
package stores
