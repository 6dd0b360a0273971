package dto

import "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"

// SupplierResponse tarjeta de proveedor.
type SupplierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	Reliability int    `json:"reliability"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// NewSupplierResponse mapea un proveedor.
func NewSupplierResponse(s entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Contact:     s.Contact,
		Phone:       s.Phone,
		Category:    s.Category,
		Reliability: s.Reliability,
		WhatsAppURL: s.WhatsAppURL(),
	}
}

// NewSupplierList mapea la lista de proveedores.
func NewSupplierList(ss []entity.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewSupplierResponse(s))
	}
	return out
}
