package repository

import "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"

// SupplierRepository define el puerto de lectura de proveedores.
type SupplierRepository interface {
	List() []entity.Supplier
	GetByID(id string) (*entity.Supplier, error)
}
