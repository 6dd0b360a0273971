package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/dto"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	domaininv "github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/inventory"
)

const maxUsagePage = 100

// InventoryHandler maneja el inventario, el registro de consumos y el historial.
type InventoryHandler struct {
	store   *inventory.Store
	reports *inventory.ReportService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(store *inventory.Store, reports *inventory.ReportService) *InventoryHandler {
	return &InventoryHandler{store: store, reports: reports}
}

// List godoc
// @Summary      Listar inventario
// @Description  Búsqueda sin distinguir mayúsculas ni tildes, filtro por categoría y orden.
// @Tags         inventory
// @Produce      json
// @Param        search    query  string  false  "Subcadena del nombre"
// @Param        category  query  string  false  "Categoría exacta; All o vacío = todas"
// @Param        sort      query  string  false  "name (defecto) | quantity | expiry"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	if !domaininv.ValidSort(q.Sort) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "sort debe ser name, quantity o expiry",
		})
	}
	items := domaininv.Apply(h.store.Items(), domaininv.Query{
		Search: q.Search, Category: q.Category, SortBy: q.Sort,
	})
	return c.JSON(dto.NewInventoryListResponse(items))
}

// Categories godoc
// @Summary      Categorías del inventario
// @Description  "All" seguido de las categorías en orden de aparición.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/inventory/categories [get]
func (h *InventoryHandler) Categories(c *fiber.Ctx) error {
	cats := append([]string{domaininv.AllCategories}, domaininv.Categories(h.store.Items())...)
	return c.JSON(cats)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	it, err := h.store.Item(c.Params("id"))
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.JSON(dto.NewInventoryItemResponse(*it))
}

// Upsert godoc
// @Summary      Crear o reemplazar producto
// @Description  Sin id crea un producto nuevo (201). Con id reemplaza el existente o lo crea con ese id.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertItemRequest  true  "Producto"
// @Success      200   {object}  dto.InventoryItemResponse
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	expiry, err := dto.ParseDate(in.ExpiryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "expiry_date debe tener formato YYYY-MM-DD",
		})
	}

	it, created, err := h.store.UpsertItem(inventory.UpsertItemInput{
		ID:           in.ID,
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		MinThreshold: in.MinThreshold,
		ExpiryDate:   expiry,
		PricePerUnit: in.PricePerUnit,
	})
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.NewInventoryItemResponse(*it))
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  El historial de consumo del producto se conserva.
// @Tags         inventory
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if !h.store.RemoveItem(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordUsage godoc
// @Summary      Registrar consumo
// @Description  Resta la cantidad (sin bajar de cero) y antepone un registro al historial.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.RecordUsageRequest  true  "quantity > 0"
// @Success      201   {object}  dto.UsageHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/usage [post]
func (h *InventoryHandler) RecordUsage(c *fiber.Ctx) error {
	var in dto.RecordUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	entry, err := h.store.RecordUsage(c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUsageHistoryResponse(*entry))
}

// Report godoc
// @Summary      Informe de existencias en PDF
// @Tags         inventory
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.reports.Generate(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="existencias-%s.pdf"`, c.Context().Time().Format("20060102")))
	return c.Send(pdf)
}

// Usage godoc
// @Summary      Historial de consumo
// @Description  Más reciente primero, paginado.
// @Tags         inventory
// @Produce      json
// @Param        limit   query  int  false  "1-100, por defecto 20"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.UsageListResponse
// @Router       /api/usage [get]
func (h *InventoryHandler) Usage(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	if page.Limit > maxUsagePage {
		page.Limit = maxUsagePage
	}
	return c.JSON(dto.NewUsageListResponse(h.store.History(0), page))
}
