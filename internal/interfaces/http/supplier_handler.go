package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/dto"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/repository"
)

// SupplierHandler tarjetas de proveedores con enlace de WhatsApp.
type SupplierHandler struct {
	repo repository.SupplierRepository
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(repo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

// List godoc
// @Summary      Proveedores
// @Tags         suppliers
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewSupplierList(h.repo.List()))
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "proveedor no encontrado")
	}
	return c.JSON(dto.NewSupplierResponse(*s))
}
