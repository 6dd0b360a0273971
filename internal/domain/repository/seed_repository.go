package repository

import (
	"context"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// SeedData estado inicial de la sesión: inventario, historial de consumo y proveedores.
type SeedData struct {
	Items     []entity.InventoryItem
	Usage     []entity.UsageHistory // más reciente primero
	Suppliers []entity.Supplier
}

// SeedRepository define el puerto para cargar el estado inicial al arrancar el proceso (DIP).
// El estado no se persiste: cada arranque parte de la semilla.
type SeedRepository interface {
	Load(ctx context.Context) (*SeedData, error)
}
