package main

import (
	"context"

	"github.com/Sam-eff/car-rental-site/internal/formatter"
	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/urfave/cli/v3"
)

// WishlistList prints the server-side wishlist loaded for the restored session.
func (r *Runner) WishlistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	entries := r.provider.Wishlist.List()
	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}
	return r.writeBytes(formatter.WishlistToText(entries))
}

// WishlistAdd saves a car to the wishlist.
func (r *Runner) WishlistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.start(ctx); err != nil {
		return err
	}

	return r.report(r.provider.Wishlist.Add(ctx, models.Car{ID: id}))
}

// WishlistRemove removes a car from the wishlist by car ID.
func (r *Runner) WishlistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}
	if err := r.start(ctx); err != nil {
		return err
	}

	return r.report(r.provider.Wishlist.Remove(ctx, id))
}
