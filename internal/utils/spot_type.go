package utils

import (
	"fmt"
	"strings"

	"spotbook/internal/parking"
)

// categoryAliases maps the names admins and older clients use onto the
// stored category values.
var categoryAliases = map[string]parking.Category{
	"outside":            parking.CategoryOutside,
	"outdoor":            parking.CategoryOutside,
	"standard":           parking.CategoryOutside,
	"standard-outdoor":   parking.CategoryOutside,
	"underground":        parking.CategoryUnderground,
	"garage":             parking.CategoryUnderground,
	"scarce-underground": parking.CategoryUnderground,
	"special":            parking.CategorySpecial,
	"restricted":         parking.CategorySpecial,
	"restricted-special": parking.CategorySpecial,
	"guest":              parking.CategoryGuest,
	"visitor":            parking.CategoryGuest,
	"transient-guest":    parking.CategoryGuest,
}

// ParseSpotCategory normalizes a spot type name.
func ParseSpotCategory(name string) (parking.Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown spot type %q", name)
}
