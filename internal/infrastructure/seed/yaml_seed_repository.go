// Package seed carga el estado inicial del almacén desde YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/repository"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// Verificar en tiempo de compilación que YAMLSeedRepository implementa SeedRepository.
var _ repository.SeedRepository = (*YAMLSeedRepository)(nil)

// YAMLSeedRepository lee la semilla de un fichero; con path vacío usa la semilla embebida.
type YAMLSeedRepository struct {
	path string
	now  func() time.Time
}

// NewYAMLSeedRepository construye el repositorio.
func NewYAMLSeedRepository(path string) *YAMLSeedRepository {
	return &YAMLSeedRepository{path: path, now: time.Now}
}

type seedFile struct {
	Items     []seedItem     `yaml:"items"`
	Usage     []seedUsage    `yaml:"usage"`
	Suppliers []seedSupplier `yaml:"suppliers"`
}

type seedItem struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	Category     string           `yaml:"category"`
	Quantity     decimal.Decimal  `yaml:"quantity"`
	Unit         string           `yaml:"unit"`
	MinThreshold decimal.Decimal  `yaml:"min_threshold"`
	ExpiryDate   string           `yaml:"expiry_date"`
	PricePerUnit *decimal.Decimal `yaml:"price_per_unit"`
	LastUpdated  string           `yaml:"last_updated"`
}

type seedUsage struct {
	ID               string          `yaml:"id"`
	ItemID           string          `yaml:"item_id"`
	ItemName         string          `yaml:"item_name"`
	Date             string          `yaml:"date"`
	QuantityConsumed decimal.Decimal `yaml:"quantity_consumed"`
	Unit             string          `yaml:"unit"`
}

type seedSupplier struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Contact     string `yaml:"contact"`
	Phone       string `yaml:"phone"`
	Category    string `yaml:"category"`
	Reliability int    `yaml:"reliability"`
}

// Load lee y valida la semilla. El historial se devuelve del más reciente al más antiguo.
func (r *YAMLSeedRepository) Load(ctx context.Context) (*repository.SeedData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := defaultSeed
	source := "semilla embebida"
	if r.path != "" {
		b, err := os.ReadFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("seed: leer %s: %w", r.path, err)
		}
		raw, source = b, r.path
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: parsear %s: %w", source, err)
	}
	data, err := r.convert(f)
	if err != nil {
		return nil, fmt.Errorf("seed: %s: %w", source, err)
	}
	return data, nil
}

func (r *YAMLSeedRepository) convert(f seedFile) (*repository.SeedData, error) {
	now := r.now()
	data := &repository.SeedData{
		Items:     make([]entity.InventoryItem, 0, len(f.Items)),
		Usage:     make([]entity.UsageHistory, 0, len(f.Usage)),
		Suppliers: make([]entity.Supplier, 0, len(f.Suppliers)),
	}

	seen := make(map[string]bool, len(f.Items))
	for i, it := range f.Items {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Unit) == "" {
			return nil, fmt.Errorf("producto #%d: id, name y unit son obligatorios", i+1)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("producto %s duplicado", it.ID)
		}
		seen[it.ID] = true
		if it.Quantity.IsNegative() || it.MinThreshold.IsNegative() || (it.PricePerUnit != nil && it.PricePerUnit.IsNegative()) {
			return nil, fmt.Errorf("producto %s: cantidades y precio no pueden ser negativos", it.ID)
		}

		item := entity.InventoryItem{
			ID:           it.ID,
			Name:         it.Name,
			Category:     it.Category,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			MinThreshold: it.MinThreshold,
			PricePerUnit: it.PricePerUnit,
			LastUpdated:  now,
		}
		if it.ExpiryDate != "" {
			d, err := parseDate(it.ExpiryDate)
			if err != nil {
				return nil, fmt.Errorf("producto %s: expiry_date: %w", it.ID, err)
			}
			item.ExpiryDate = &d
		}
		if it.LastUpdated != "" {
			d, err := parseDate(it.LastUpdated)
			if err != nil {
				return nil, fmt.Errorf("producto %s: last_updated: %w", it.ID, err)
			}
			item.LastUpdated = d
		}
		data.Items = append(data.Items, item)
	}

	for _, u := range f.Usage {
		if u.ID == "" || u.ItemID == "" {
			return nil, fmt.Errorf("consumo sin id o item_id")
		}
		if !u.QuantityConsumed.IsPositive() {
			return nil, fmt.Errorf("consumo %s: quantity_consumed debe ser positivo", u.ID)
		}
		d, err := parseDate(u.Date)
		if err != nil {
			return nil, fmt.Errorf("consumo %s: date: %w", u.ID, err)
		}
		data.Usage = append(data.Usage, entity.UsageHistory{
			ID:               u.ID,
			ItemID:           u.ItemID,
			ItemName:         u.ItemName,
			Date:             d,
			QuantityConsumed: u.QuantityConsumed,
			Unit:             u.Unit,
		})
	}
	// Más reciente primero; en empate se conserva el orden del fichero.
	sort.SliceStable(data.Usage, func(i, j int) bool {
		return data.Usage[i].Date.After(data.Usage[j].Date)
	})

	for _, s := range f.Suppliers {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("proveedor sin id o name")
		}
		if s.Reliability < 0 || s.Reliability > 100 {
			return nil, fmt.Errorf("proveedor %s: reliability fuera de rango 0-100", s.ID)
		}
		data.Suppliers = append(data.Suppliers, entity.Supplier{
			ID:          s.ID,
			Name:        s.Name,
			Contact:     s.Contact,
			Phone:       strings.TrimPrefix(s.Phone, "+"),
			Category:    s.Category,
			Reliability: s.Reliability,
		})
	}
	return data, nil
}

// parseDate acepta YYYY-MM-DD o RFC 3339.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}
