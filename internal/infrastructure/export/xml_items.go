package export

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var _ usecase.ItemsXMLExporter = (*ItemsXMLExporter)(nil)

// ItemsXMLExporter serializa el inventario como documento XML plano
// (sin firma: es un volcado de datos, no un documento legal).
type ItemsXMLExporter struct{}

// NewItemsXMLExporter construye el exportador.
func NewItemsXMLExporter() *ItemsXMLExporter {
	return &ItemsXMLExporter{}
}

// Export genera el []byte del documento <Inventory> con un <Item> por fila.
func (e *ItemsXMLExporter) Export(items []*entity.Item) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Inventory")
	root.CreateAttr("generatedAt", time.Now().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(items)))

	for _, it := range items {
		el := root.CreateElement("Item")
		el.CreateAttr("id", it.ID)
		addChild(el, "ItemNo", it.ItemNo)
		addChild(el, "CompanyName", it.CompanyName)
		addChild(el, "Name", it.Name)
		addChild(el, "PieceType", it.PieceType)
		addChild(el, "Office", it.Office)
		addChild(el, "Qty", strconv.Itoa(it.Qty))
		addChild(el, "QuantitySold", strconv.Itoa(it.QuantitySold))
		addChild(el, "RemainingQty", strconv.Itoa(it.RemainingQty))
		if it.ExitDate != nil {
			addChild(el, "ExitDate", it.ExitDate.Format("2006-01-02"))
		}
		addChild(el, "CreatedAt", it.CreatedAt.Format(time.RFC3339))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// addChild crea el elemento solo si hay valor (los opcionales vacíos no se emiten).
func addChild(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}
