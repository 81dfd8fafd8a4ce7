package stores

import (
	"context"
	"fmt"
	"io"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/charmbracelet/log"
)

// ProviderOpts configures [New].
type ProviderOpts struct {
	Slot   Slot
	Rental Remote
	Logger *log.Logger
}

// Provider owns the client state for one application run.
//
// The wishlist follows the session: login starts it, logout resets it.
type Provider struct {
	Session    *Session
	Comparison *ComparisonStore
	Wishlist   *WishlistStore

	slot   Slot
	logger *log.Logger
}

// New builds the session and both stores over one slot and remote.
func New(opts ProviderOpts) (*Provider, error) {
	if opts.Slot == nil {
		return nil, fmt.Errorf("%w: storage slot is required", shared.ErrMissingConfig)
	}
	if opts.Rental == nil {
		return nil, fmt.Errorf("%w: rental client is required", shared.ErrMissingConfig)
	}

	logger := orDiscard(opts.Logger)
	p := &Provider{
		Session:    NewSession(opts.Slot, opts.Rental, shared.WithLogger(logger, "store", "session")),
		Comparison: NewComparisonStore(opts.Slot, shared.WithLogger(logger, "store", "comparison")),
		Wishlist:   NewWishlistStore(opts.Rental, shared.WithLogger(logger, "store", "wishlist")),
		slot:       opts.Slot,
		logger:     logger,
	}

	p.Session.OnChange(func(ctx context.Context, profile *models.Profile) {
		if profile == nil {
			p.Wishlist.Reset()
			return
		}
		p.Wishlist.Start(ctx)
	})

	return p, nil
}

// Start restores a persisted session, which in turn loads the wishlist.
func (p *Provider) Start(ctx context.Context) {
	if err := p.Session.Restore(ctx); err != nil {
		p.logger.Info("continuing logged out", "reason", err)
	}
}

// Close clears session-bound state and closes the slot when it is closable.
func (p *Provider) Close() error {
	p.Wishlist.Reset()

	if c, ok := p.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
