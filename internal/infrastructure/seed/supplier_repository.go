package seed

import (
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// SupplierRepository lista de proveedores en memoria, de sólo lectura.
type SupplierRepository struct {
	suppliers []entity.Supplier
}

// NewSupplierRepository copia la lista recibida.
func NewSupplierRepository(suppliers []entity.Supplier) *SupplierRepository {
	return &SupplierRepository{suppliers: append([]entity.Supplier(nil), suppliers...)}
}

func (r *SupplierRepository) List() []entity.Supplier {
	return append([]entity.Supplier(nil), r.suppliers...)
}

func (r *SupplierRepository) GetByID(id string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}
