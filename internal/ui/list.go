package ui

import (
	"fmt"
	"strings"

	"github.com/Sam-eff/car-rental-site/internal/formatter"
	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = carItem{}
	_ list.Item = wishlistItem{}
)

// carItem wraps [models.Car] to implement [list.Item].
//
// compared and saved are captured when the item is built; the model rebuilds items after every toggle.
type carItem struct {
	car      models.Car
	compared bool
	saved    bool
}

func (i carItem) FilterValue() string { return i.car.Name + " " + i.car.BrandName() }
func (i carItem) Title() string {
	marks := []string{}
	if i.compared {
		marks = append(marks, "⇄")
	}
	if i.saved {
		marks = append(marks, "♥")
	}
	if len(marks) == 0 {
		return i.car.Name
	}
	return fmt.Sprintf("%s %s", i.car.Name, styles.mark.Render(strings.Join(marks, " ")))
}
func (i carItem) Description() string {
	desc := formatter.Price(i.car)
	if brand := i.car.BrandName(); brand != "" {
		desc = fmt.Sprintf("%s • %s", brand, desc)
	}
	if !i.car.IsAvailable {
		desc += " • unavailable"
	}
	return desc
}

// wishlistItem wraps [models.WishlistEntry] to implement [list.Item].
type wishlistItem struct {
	entry models.WishlistEntry
}

func (i wishlistItem) FilterValue() string { return i.entry.Car.Name }
func (i wishlistItem) Title() string       { return i.entry.Car.Name }
func (i wishlistItem) Description() string {
	desc := formatter.Price(i.entry.Car)
	if !i.entry.CreatedAt.IsZero() {
		desc = fmt.Sprintf("%s • saved %s", desc, i.entry.CreatedAt.Format("2006-01-02"))
	}
	return desc
}
