// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI offers four views over the same stores the CLI uses:
//  1. [CarListView] : Browse the catalog, marking compared and saved cars
//  2. [DetailView] : Every field of the highlighted car
//  3. [ComparisonView] : Side-by-side table of up to three cars
//  4. [WishlistView] : The server-side wishlist of the logged-in user
//
// Comparison toggles are local and applied inside Update. Catalog and wishlist calls run as [tea.Cmd]
// goroutines and report back through the Msg union, so a slow server never blocks rendering.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus c (compare), w (wishlist),
// v (comparison view) and l (wishlist view), with contextual help from charmbracelet/bubbles/help.
package ui
