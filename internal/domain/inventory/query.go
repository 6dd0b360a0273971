// Package inventory contiene la lógica de consulta del inventario: búsqueda,
// filtro por categoría, ordenación y métricas del panel de control.
package inventory

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// Criterios de ordenación.
const (
	SortByName     = "name"
	SortByQuantity = "quantity"
	SortByExpiry   = "expiry"

	// AllCategories desactiva el filtro de categoría.
	AllCategories = "All"
)

// Query filtro y orden de la vista de inventario.
type Query struct {
	Search   string // subcadena del nombre, sin distinguir mayúsculas ni tildes
	Category string // "" o "All" = todas
	SortBy   string // name (por defecto), quantity, expiry
}

// ValidSort indica si s es un criterio de ordenación admitido ("" incluido).
func ValidSort(s string) bool {
	switch s {
	case "", SortByName, SortByQuantity, SortByExpiry:
		return true
	}
	return false
}

// Apply filtra y ordena una copia de items. items no se modifica.
func Apply(items []entity.InventoryItem, q Query) []entity.InventoryItem {
	needle := Fold(q.Search)
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if needle != "" && !strings.Contains(Fold(it.Name), needle) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && it.Category != q.Category {
			continue
		}
		out = append(out, it)
	}

	switch q.SortBy {
	case SortByQuantity:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Quantity.LessThan(out[j].Quantity)
		})
	case SortByExpiry:
		// Sin fecha de caducidad al final.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].ExpiryDate, out[j].ExpiryDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	default:
		c := collate.New(language.Spanish, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

// Categories devuelve las categorías distintas en orden de aparición.
func Categories(items []entity.InventoryItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// Fold normaliza s para comparaciones: minúsculas y sin marcas diacríticas ("Jamón" → "jamon").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
