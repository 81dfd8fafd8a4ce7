package main

import (
	"context"
	"fmt"

	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the rental API with the stored token, if any.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRental(); err != nil {
		return err
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}
	compact := cmd.Bool("json")

	if err := r.start(ctx); err != nil {
		return err
	}
	r.logger.Info("GET request", "path", path)

	resp, err := r.rental.API().Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return &services.APIError{StatusCode: resp.StatusCode, Message: string(resp.Body)}
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !compact)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
