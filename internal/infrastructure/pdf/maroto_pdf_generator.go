// Package pdf genera el informe de existencias del almacén en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + cocina     │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: Valor total | Stock crítico | Caducan | Avisos │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Cantidad | Mínimo | Cad. | €  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/application/inventory"
	"github.com/frankcs-art/Asistente-de-Cocina-IA/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 120, Green: 53, Blue: 15}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 190, Green: 30, Blue: 45}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	kitchen string // nombre que aparece en la cabecera
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(kitchen string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{kitchen: kitchen}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, report inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de existencias", true).
		WithAuthor(g.kitchen, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.kitchen, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos en el inventario.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	for _, r := range tableDetailRows(report.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y cocina (izq), fecha de generación (der).
func headerRow(kitchen string, report inventory.StockReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INFORME DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(kitchen, "Cocina"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// metricsRow: los cuatro indicadores del panel.
func metricsRow(report inventory.StockReport) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 6}),
		)
	}
	critical := colorPrimary
	if report.Metrics.CriticalItems > 0 {
		critical = colorCritical
	}
	return row.New(16).Add(
		cell("Valor total", formatEuros(report.Metrics.TotalValue), colorPrimary),
		cell("Stock crítico", fmt.Sprint(report.Metrics.CriticalItems), critical),
		cell("Caducan pronto", fmt.Sprint(report.Metrics.ExpiringSoon), colorPrimary),
		cell("Avisos sin leer", fmt.Sprint(report.Unread), colorPrimary),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Caducidad", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto; los que están bajo mínimos van en rojo.
func tableDetailRows(items []entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		var c *props.Color
		style := fontstyle.Normal
		if it.IsLowStock() {
			c, style = colorCritical, fontstyle.Bold
		}
		expiry := "—"
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.Format("02/01/2006")
		}
		value := "—"
		if it.PricePerUnit != nil {
			value = formatEuros(it.StockValue())
		}

		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c, Style: style,
			}))
		}
		result = append(result, row.New(7).Add(
			cell(it.Name, 4, align.Left),
			cell(nonEmpty(it.Category, "—"), 2, align.Left),
			cell(formatQuantity(it.Quantity)+" "+it.Unit, 2, align.Right),
			cell(formatQuantity(it.MinThreshold), 1, align.Right),
			cell(expiry, 1, align.Center),
			cell(value, 2, align.Right),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Los productos en rojo están en o por debajo de su umbral mínimo. "+
				"Valores calculados con el precio unitario registrado.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEuros formato español con puntos de miles y coma decimal.
// Ej: 4425 → "4.425,00 €"
func formatEuros(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac + " €"
	if neg {
		return "-" + out
	}
	return out
}

// formatQuantity sin ceros sobrantes y con coma decimal. Ej: 4.20 → "4,2"
func formatQuantity(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
