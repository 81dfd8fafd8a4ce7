package ui

import (
	"github.com/Sam-eff/car-rental-site/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCarsFetched MsgKind = iota
	MsgWishlistToggled
	MsgWishlistFetched
)

type carsFetched struct {
	cars []models.Car
	err  error
}

// carsFetchedMsg is the constructor for [MsgCarsFetched]
func carsFetchedMsg(cars []models.Car, err error) Msg {
	return Msg{kind: MsgCarsFetched, data: carsFetched{cars, err}}
}

// wishlistToggledMsg is the constructor for [MsgWishlistToggled]
func wishlistToggledMsg(res models.Result) Msg {
	return Msg{kind: MsgWishlistToggled, data: res}
}

// wishlistFetchedMsg is the constructor for [MsgWishlistFetched]
func wishlistFetchedMsg(err error) Msg {
	return Msg{kind: MsgWishlistFetched, data: err}
}
