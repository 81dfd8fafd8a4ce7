// package formatter renders cars, comparisons, wishlists and bookings to various formats (text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Format is an output format accepted by [ExportComparison].
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ParseFormat validates s as a [Format]. "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatCSV, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}

// field is one comparison row: a label and how to read it off a car.
type field struct {
	label string
	value func(models.Car) string
}

var comparisonFields = []field{
	{"Brand", func(c models.Car) string { return orDash(c.BrandName()) }},
	{"Price/Day", func(c models.Car) string { return Price(c) }},
	{"Year", func(c models.Car) string { return intOrDash(c.Year) }},
	{"Type", func(c models.Car) string { return orDash(c.CarType) }},
	{"Transmission", func(c models.Car) string { return orDash(c.Transmission) }},
	{"Fuel", func(c models.Car) string { return orDash(c.FuelType) }},
	{"Horsepower", func(c models.Car) string {
		if c.Horsepower == nil {
			return "-"
		}
		return fmt.Sprintf("%d hp", *c.Horsepower)
	}},
	{"Top Speed", func(c models.Car) string {
		if !c.Speed.Valid {
			return "-"
		}
		return c.Speed.Decimal.String() + " km/h"
	}},
	{"0-60", func(c models.Car) string {
		if !c.Time.Valid {
			return "-"
		}
		return c.Time.Decimal.String() + " s"
	}},
	{"Rating", func(c models.Car) string {
		if c.ReviewCount == 0 {
			return "-"
		}
		return strconv.FormatFloat(c.AverageRating, 'f', 1, 64)
	}},
	{"Reviews", func(c models.Car) string { return strconv.Itoa(c.ReviewCount) }},
}

// Price formats the daily rate as "$89.00/day".
func Price(c models.Car) string {
	return "$" + c.PricePerDay.StringFixed(2) + "/day"
}

// ComparisonHeaders returns the header row: "Spec" followed by car names.
func ComparisonHeaders(cars []models.Car) []string {
	headers := []string{"Spec"}
	for _, c := range cars {
		headers = append(headers, c.Name)
	}
	return headers
}

// ComparisonRows returns one row per compared field, label first.
func ComparisonRows(cars []models.Car) [][]string {
	rows := make([][]string, 0, len(comparisonFields))
	for _, s := range comparisonFields {
		row := []string{s.label}
		for _, c := range cars {
			row = append(row, s.value(c))
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportComparison renders cars side by side in format f.
func ExportComparison(cars []models.Car, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return ComparisonToText(cars), nil
	case FormatMarkdown:
		return ComparisonToMarkdown(cars), nil
	case FormatCSV:
		return ComparisonToCSV(cars)
	case FormatJSON:
		return shared.MarshalJSON(cars, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// ComparisonToText renders a bordered table.
func ComparisonToText(cars []models.Car) []byte {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(ComparisonHeaders(cars)...).
		Rows(ComparisonRows(cars)...)
	return []byte(t.String() + "\n")
}

// ComparisonToMarkdown renders a Markdown table under a heading.
func ComparisonToMarkdown(cars []models.Car) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Car Comparison\n\n")

	headers := ComparisonHeaders(cars)
	buf.WriteString("| " + strings.Join(escapeCells(headers), " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range ComparisonRows(cars) {
		buf.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}

	return buf.Bytes()
}

// ComparisonToCSV renders the comparison with the field label as the first column.
func ComparisonToCSV(cars []models.Car) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(ComparisonHeaders(cars)); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range ComparisonRows(cars) {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CarsToText renders a one-line-per-car listing.
//
// mark is called per car and its result, when non-empty, is appended in brackets.
func CarsToText(cars []models.Car, mark func(models.Car) string) []byte {
	var buf bytes.Buffer

	for _, c := range cars {
		line := fmt.Sprintf("%4d  %-24s %-12s %s", c.ID, c.Name, orDash(c.BrandName()), Price(c))
		if !c.IsAvailable {
			line += "  (unavailable)"
		}
		if mark != nil {
			if m := mark(c); m != "" {
				line += "  [" + m + "]"
			}
		}
		buf.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	return buf.Bytes()
}

// CarDetail renders every field of a car, resolving image references against baseURL.
func CarDetail(c models.Car, baseURL string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s (%s)\n", c.Name, intOrDash(c.Year)))
	buf.WriteString(fmt.Sprintf("Brand: %s\n", orDash(c.BrandName())))
	buf.WriteString(fmt.Sprintf("Price: %s\n", Price(c)))
	for _, s := range comparisonFields[3:] {
		buf.WriteString(fmt.Sprintf("%s: %s\n", s.label, s.value(c)))
	}
	if c.Color != "" {
		buf.WriteString(fmt.Sprintf("Color: %s\n", c.Color))
	}
	if features := c.FeatureNames(); len(features) > 0 {
		buf.WriteString(fmt.Sprintf("Features: %s\n", strings.Join(features, ", ")))
	}
	buf.WriteString(fmt.Sprintf("Available: %s\n", yesNo(c.IsAvailable)))
	if img := shared.ImageURL(baseURL, c.Image); img != "" {
		buf.WriteString(fmt.Sprintf("Image: %s\n", img))
	}
	if c.Description != "" {
		buf.WriteString("\n" + c.Description + "\n")
	}

	return buf.Bytes()
}

// WishlistToText renders saved cars with the date they were saved.
func WishlistToText(entries []models.WishlistEntry) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Wishlist: %d car(s)\n\n", len(entries)))
	for i, e := range entries {
		saved := ""
		if !e.CreatedAt.IsZero() {
			saved = "  saved " + e.CreatedAt.Format("2006-01-02")
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, e.Car.Name, Price(e.Car), saved))
	}

	return buf.Bytes()
}

// AvailabilityToText renders an availability check result.
func AvailabilityToText(a models.Availability) []byte {
	var buf bytes.Buffer

	if a.Available {
		buf.WriteString("Available")
		if a.Message != "" {
			buf.WriteString(": " + a.Message)
		}
		buf.WriteString("\n")
		return buf.Bytes()
	}

	buf.WriteString("Not available")
	if a.Error != "" {
		buf.WriteString(": " + a.Error)
	}
	buf.WriteString("\n")
	if a.Conflicting != nil {
		buf.WriteString(fmt.Sprintf("Conflicting booking: %s to %s\n", a.Conflicting.PickupDate, a.Conflicting.ReturnDate))
	}
	return buf.Bytes()
}

// BookingsToText renders one line per booking: id, car, dates, days, total and status.
func BookingsToText(bookings []models.Booking) []byte {
	var buf bytes.Buffer

	for _, b := range bookings {
		buf.WriteString(fmt.Sprintf("%4d  %-24s %s to %s  %3d day(s)  %10s  %s\n",
			b.ID, b.Car.Name, b.PickupDate, b.ReturnDate, b.TotalDays, "$"+b.TotalCost.StringFixed(2), b.Status))
	}

	return buf.Bytes()
}

// BookingDetail renders a single booking.
func BookingDetail(b models.Booking) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Booking #%d (%s)\n", b.ID, b.Status))
	buf.WriteString(fmt.Sprintf("Car: %s (%s)\n", b.Car.Name, Price(b.Car)))
	buf.WriteString(fmt.Sprintf("Dates: %s to %s, %d day(s)\n", b.PickupDate, b.ReturnDate, b.TotalDays))
	buf.WriteString(fmt.Sprintf("Total: $%s\n", b.TotalCost.StringFixed(2)))
	if !b.CreatedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("Booked: %s\n", b.CreatedAt.Format("2006-01-02 15:04")))
	}

	return buf.Bytes()
}

// ReviewsToText renders reviews as star ratings followed by the comment.
func ReviewsToText(reviews []models.Review) []byte {
	var buf bytes.Buffer

	for _, r := range reviews {
		rating := min(max(r.Rating, 0), 5)
		buf.WriteString(fmt.Sprintf("%s  %s", strings.Repeat("★", rating)+strings.Repeat("☆", 5-rating), r.Username))
		if !r.CreatedAt.IsZero() {
			buf.WriteString(" on " + r.CreatedAt.Format("2006-01-02"))
		}
		buf.WriteString("\n")
		if r.Comment != "" {
			buf.WriteString("      " + r.Comment + "\n")
		}
	}

	return buf.Bytes()
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidArgument)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteComparisonExport writes the comparison to path in format f.
//
// Defaults to comparison.{ext} as the filename.
func WriteComparisonExport(cars []models.Car, f Format, path string) (string, error) {
	if path == "" {
		path = "comparison." + f.Ext()
	}

	data, err := ExportComparison(cars, f)
	if err != nil {
		return "", fmt.Errorf("failed to render comparison: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write comparison file: %w", err)
	}

	return path, nil
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
