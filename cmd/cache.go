package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStatus reports how many car snapshots are cached locally and when each saved key was last written.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	if r.cars == nil {
		return fmt.Errorf("%w: car cache not initialized", shared.ErrServiceUnavailable)
	}

	count, err := r.cars.Count()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Cached cars: %d\n", count)
	fmt.Fprintf(&buf, "Database: %s\n", r.config.Database.Path)

	if r.slots != nil {
		keys, err := r.slots.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			updatedAt, err := r.slots.UpdatedAt(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(&buf, "Saved %s: %s\n", key, updatedAt.Local().Format(time.RFC1123))
		}
	}

	return r.writeBytes(buf.Bytes())
}

// CachePurge deletes snapshots fetched longer ago than --older-than.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	if r.cars == nil {
		return fmt.Errorf("%w: car cache not initialized", shared.ErrServiceUnavailable)
	}

	age := cmd.Duration("older-than")
	if age < 0 {
		return fmt.Errorf("%w: --older-than must not be negative", shared.ErrInvalidFlag)
	}

	// One second of slack so a zero age also removes rows written this instant.
	cutoff := time.Now().Add(-age)
	if age == 0 {
		cutoff = cutoff.Add(time.Second)
	}

	removed, err := r.cars.Purge(cutoff)
	if err != nil {
		return err
	}

	r.logger.Info("purged car cache", "removed", removed, "cutoff", cutoff)
	return r.writePlain("✓ Removed %d cached car(s)\n", removed)
}
