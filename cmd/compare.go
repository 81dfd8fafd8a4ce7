package main

import (
	"context"
	"fmt"

	"github.com/Sam-eff/car-rental-site/internal/formatter"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/urfave/cli/v3"
)

// CompareAdd fetches a car and adds its snapshot to the comparison.
func (r *Runner) CompareAdd(ctx context.Context, cmd *cli.Command) error {
	cmp, err := r.comparison()
	if err != nil {
		return err
	}

	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	car, err := r.lookupCar(ctx, id)
	if err != nil {
		return err
	}

	if err := r.report(cmp.Add(*car)); err != nil {
		return err
	}
	return r.writePlain("Comparing %d of %d\n", cmp.Len(), cmp.Max())
}

// CompareRemove drops a car from the comparison. Removing an absent car succeeds.
func (r *Runner) CompareRemove(ctx context.Context, cmd *cli.Command) error {
	cmp, err := r.comparison()
	if err != nil {
		return err
	}

	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.report(cmp.Remove(id))
}

// CompareClear empties the comparison.
func (r *Runner) CompareClear(ctx context.Context, cmd *cli.Command) error {
	cmp, err := r.comparison()
	if err != nil {
		return err
	}
	return r.report(cmp.Clear())
}

// CompareList prints the selected cars in insertion order.
func (r *Runner) CompareList(ctx context.Context, cmd *cli.Command) error {
	cmp, err := r.comparison()
	if err != nil {
		return err
	}

	cars := cmp.List()
	if len(cars) == 0 {
		return r.writePlain("No cars selected for comparison\n")
	}

	if err := r.writePlain("Comparing %d of %d\n\n", len(cars), cmp.Max()); err != nil {
		return err
	}
	return r.writeBytes(formatter.CarsToText(cars, nil))
}

// CompareShow renders the side-by-side table. It needs at least two cars.
func (r *Runner) CompareShow(ctx context.Context, cmd *cli.Command) error {
	cmp, err := r.comparison()
	if err != nil {
		return err
	}

	if !cmp.CanCompare() {
		return fmt.Errorf("%w: add at least 2 cars to compare (have %d)", shared.ErrInvalidInput, cmp.Len())
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output != "" || cmd.Bool("save") {
		path, err := formatter.WriteComparisonExport(cmp.List(), format, output)
		if err != nil {
			return err
		}
		r.logger.Info("comparison exported", "path", path, "format", format)
		return r.writePlain("✓ Comparison written to %s\n", path)
	}

	data, err := formatter.ExportComparison(cmp.List(), format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}
