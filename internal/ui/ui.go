package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/Sam-eff/car-rental-site/internal/formatter"
	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/stores"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CarListView ViewState = iota
	DetailView
	ComparisonView
	WishlistView
)

// Catalog is the read side of the rental API the TUI browses.
type Catalog interface {
	Cars(ctx context.Context, search string) ([]models.Car, error)
}

// Opts holds the TUI dependencies.
type Opts struct {
	Catalog  Catalog
	Provider *stores.Provider
	BaseURL  string // resolves relative image paths in the detail view
	Logger   *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   Catalog
	provider  *stores.Provider
	baseURL   string
	logger    *log.Logger
	width     int
	height    int
	carList   list.Model
	wishList  list.Model
	cars      []models.Car
	selected  *models.Car
	status    string
	statusErr bool
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	carList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	carList.Title = "Cars"
	wishList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	wishList.Title = "Wishlist"

	return &Model{
		ctx:      ctx,
		view:     CarListView,
		catalog:  opts.Catalog,
		provider: opts.Provider,
		baseURL:  opts.BaseURL,
		logger:   logger,
		carList:  carList,
		wishList: wishList,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by fetching the catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchCars()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.carList.SetSize(msg.Width-4, msg.Height-8)
		m.wishList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CarListView:
			return m.handleCarListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ComparisonView:
			return m.handleComparisonKeys(msg)
		case WishlistView:
			return m.handleWishlistKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCarsFetched:
		data := msg.data.(carsFetched)
		if data.err != nil {
			m.logger.Error("failed to fetch cars", "error", data.err)
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.cars = data.cars
		m.refreshItems()

	case MsgWishlistToggled:
		m.setStatus(msg.data.(models.Result))
		m.refreshItems()

	case MsgWishlistFetched:
		if err, _ := msg.data.(error); err != nil {
			m.status, m.statusErr = "Failed to load wishlist", true
		}
		m.refreshItems()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == CarListView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case CarListView:
		return m.renderCarList()
	case DetailView:
		return m.renderDetail()
	case ComparisonView:
		return m.renderComparison()
	case WishlistView:
		return m.renderWishlist()
	default:
		return ""
	}
}

func (m *Model) handleCarListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Letters belong to the filter input while the user is typing.
	if m.carList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.carList, cmd = m.carList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchCars()
	}

	if m.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		if car, ok := m.highlighted(); ok {
			m.selected = &car
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.compare):
		if car, ok := m.highlighted(); ok {
			m.toggleComparison(car)
		}
		return m, nil
	case key.Matches(msg, m.keys.wishlist):
		if car, ok := m.highlighted(); ok {
			return m, m.toggleWishlist(car)
		}
		return m, nil
	case key.Matches(msg, m.keys.view):
		m.openComparison()
		return m, nil
	case key.Matches(msg, m.keys.saved):
		m.view = WishlistView
		return m, m.fetchWishlist()
	}

	var cmd tea.Cmd
	m.carList, cmd = m.carList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CarListView
		m.selected = nil
	case key.Matches(msg, m.keys.compare):
		if m.selected != nil {
			m.toggleComparison(*m.selected)
		}
	case key.Matches(msg, m.keys.wishlist):
		if m.selected != nil {
			return m, m.toggleWishlist(*m.selected)
		}
	}
	return m, nil
}

func (m *Model) handleComparisonKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CarListView
	case key.Matches(msg, m.keys.clear):
		m.setStatus(m.provider.Comparison.Clear())
		m.refreshItems()
		m.view = CarListView
	}
	return m, nil
}

func (m *Model) handleWishlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wishList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.wishList, cmd = m.wishList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CarListView
		return m, nil
	case key.Matches(msg, m.keys.wishlist):
		if item, ok := m.wishList.SelectedItem().(wishlistItem); ok {
			return m, m.toggleWishlist(item.entry.Car)
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchWishlist()
	}

	var cmd tea.Cmd
	m.wishList, cmd = m.wishList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CarListView:
		m.carList, cmd = m.carList.Update(msg)
	case WishlistView:
		m.wishList, cmd = m.wishList.Update(msg)
	}
	return m, cmd
}

func (m *Model) highlighted() (models.Car, bool) {
	item, ok := m.carList.SelectedItem().(carItem)
	if !ok {
		return models.Car{}, false
	}
	return item.car, true
}

func (m *Model) toggleComparison(car models.Car) {
	m.setStatus(m.provider.Comparison.Toggle(car))
	m.refreshItems()
}

func (m *Model) openComparison() {
	if !m.provider.Comparison.CanCompare() {
		m.status = fmt.Sprintf("Select at least 2 cars to compare (%d/%d)", m.provider.Comparison.Len(), m.provider.Comparison.Max())
		m.statusErr = true
		return
	}
	m.view = ComparisonView
}

func (m *Model) setStatus(res models.Result) {
	m.status = res.Message
	m.statusErr = !res.Success
	if !res.Success {
		m.logger.Warn("action failed", "message", res.Message, "error", res.Err)
	}
}

// refreshItems rebuilds both lists from the current store state.
func (m *Model) refreshItems() {
	items := make([]list.Item, len(m.cars))
	for i, c := range m.cars {
		items[i] = carItem{
			car:      c,
			compared: m.provider.Comparison.Contains(c.ID),
			saved:    m.provider.Wishlist.Contains(c.ID),
		}
	}
	m.carList.SetItems(items)

	entries := m.provider.Wishlist.List()
	saved := make([]list.Item, len(entries))
	for i, e := range entries {
		saved[i] = wishlistItem{entry: e}
	}
	m.wishList.SetItems(saved)
	m.wishList.Title = fmt.Sprintf("Wishlist (%d)", len(entries))
}

func (m *Model) fetchCars() tea.Cmd {
	return func() tea.Msg {
		cars, err := m.catalog.Cars(m.ctx, "")
		return carsFetchedMsg(cars, err)
	}
}

func (m *Model) fetchWishlist() tea.Cmd {
	wishlist := m.provider.Wishlist
	return func() tea.Msg {
		return wishlistFetchedMsg(wishlist.Fetch(m.ctx))
	}
}

func (m *Model) toggleWishlist(car models.Car) tea.Cmd {
	wishlist := m.provider.Wishlist
	return func() tea.Msg {
		return wishlistToggledMsg(wishlist.Toggle(m.ctx, car))
	}
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return "\n" + styles.err.Render(m.status)
	}
	return "\n" + styles.ok.Render(m.status)
}

func (m *Model) renderCarList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.compare, m.keys.wishlist, m.keys.view, m.keys.saved, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	counter := styles.help.Render(fmt.Sprintf("Comparing %d/%d", m.provider.Comparison.Len(), m.provider.Comparison.Max()))
	return fmt.Sprintf("%s\n%s%s\n\n%s", m.carList.View(), counter, m.renderStatus(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}

	title := styles.title.Render(m.selected.Name)
	body := string(formatter.CarDetail(*m.selected, m.baseURL))

	helpKeys := []key.Binding{m.keys.compare, m.keys.wishlist, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, body, m.renderStatus(), helpView)
}

func (m *Model) renderComparison() string {
	cars := m.provider.Comparison.List()
	title := styles.title.Render(fmt.Sprintf("Comparing %d of %d", len(cars), m.provider.Comparison.Max()))
	table := string(formatter.ComparisonToText(cars))

	helpKeys := []key.Binding{m.keys.clear, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, table, helpView)
}

func (m *Model) renderWishlist() string {
	helpKeys := []key.Binding{m.keys.wishlist, m.keys.refresh, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.provider.Wishlist.State() == stores.Unauthenticated {
		msg := styles.warn.Render("Please login to see your wishlist (rent auth login)")
		return fmt.Sprintf("%s\n\n%s", msg, helpView)
	}
	if m.provider.Wishlist.State() == stores.Loading {
		return fmt.Sprintf("Loading wishlist...\n\n%s", helpView)
	}
	return fmt.Sprintf("%s%s\n\n%s", m.wishList.View(), m.renderStatus(), helpView)
}
