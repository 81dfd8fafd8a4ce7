// Package services implements the clients of the rental REST backend.
//
// # Raw Client
//
// [APIService] performs raw requests against the API base (by default http://localhost:8000/api)
// and returns an [APIResponse] holding status, headers, body and the decoded JSON value when the body parses.
//
// The bearer token is held in an [oauth2.TokenSource] and applied with [oauth2.Token.SetAuthHeader].
// Every request carries a fresh X-Request-ID. An optional [rate.Limiter] caps outgoing requests.
//
// # Typed Client
//
// [RentalService] wraps the raw client with typed calls for the catalog (cars, brands, availability),
// authentication (token, register, profile) and the wishlist.
//
// List endpoints return either a bare JSON array or a {"count": n, "results": [...]} page; both decode to a slice.
//
// # Error Handling
//
// Non-2xx responses become [*APIError], which wraps [shared.ErrAPIRequest] and carries the backend's message:
//   - "error" or "detail" fields when present
//   - field errors flattened to "field: message; ..."
//   - otherwise the raw body or the status text
//
// A 404 on a single car additionally wraps [shared.ErrCarNotFound].
package services
