// Package pdf genera el informe imprimible del historial de movimientos de
// stock (página A4, más recientes primero).
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/toner-control-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MovementReportGenerator genera el PDF del ledger usando Maroto v2.
type MovementReportGenerator struct{}

// NewMovementReportGenerator construye el generador.
func NewMovementReportGenerator() *MovementReportGenerator { return &MovementReportGenerator{} }

// Generate arma el informe y devuelve sus bytes.
func (g *MovementReportGenerator) Generate(title string, movements []*entity.StockMovementDetail) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Historial de movimientos de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, len(movements)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, mov := range movements {
		m.AddRows(movementRow(mov))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string, count int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d movimientos", count), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(7).Add(
		header(2, "Fecha"),
		header(1, "Tipo"),
		header(1, "Cant."),
		header(3, "Tóner"),
		header(2, "Impresora"),
		header(2, "Usuario"),
		header(1, "Nota"),
	)
}

func movementRow(m *entity.StockMovementDetail) core.Row {
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 7}))
	}
	toner := m.TonerName
	if m.TonerModel != "" {
		toner += " (" + m.TonerModel + ")"
	}
	return row.New(6).Add(
		cell(2, m.CreatedAt.Format("02/01/2006 15:04")),
		cell(1, movementLabel(m.Type)),
		cell(1, fmt.Sprintf("%d", m.Quantity)),
		cell(3, toner),
		cell(2, m.PrinterName),
		cell(2, m.UserName),
		cell(1, m.Note),
	)
}

func footerRow() core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Registro de auditoría: los movimientos listados son inmutables.", props.Text{
				Size: 7, Color: colorGray,
			}),
		),
	)
}

func movementLabel(t string) string {
	switch t {
	case entity.MovementTypeIn:
		return "Entrada"
	case entity.MovementTypeOut:
		return "Salida"
	case entity.MovementTypeAdjust:
		return "Ajuste"
	}
	return t
}
