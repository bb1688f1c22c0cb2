package services

import (
	"bytes"
	"fmt"
	"strings"

	"storeapi/internal/domain"
	"storeapi/internal/domain/models"
	"storeapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// InvoiceService renders an order as a printable PDF for the admin view.
// It reads the same order/item/product snapshot the CSV export reads.
type InvoiceService struct {
	Export    ExportService
	RequestID string
}

func (s InvoiceService) GenerateInvoice(order models.Order) ([]byte, string, error) {
	rows, err := s.Export.ResolveRows(order)
	if err != nil {
		return nil, "", domain.GenerationError{Err: err}
	}
	utils.LogEvent(s.RequestID, "invoice", "generate_pdf", fmt.Sprintf("order_id=%d rows=%d", order.ID, len(rows)))
	return buildInvoicePDF(order, rows)
}

func buildInvoicePDF(order models.Order, rows []ExportRow) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Order Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ORDER INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Order No : #"+displayNumber(order))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status   : "+safe(order.Status, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date     : "+safe(order.CreatedAt, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	widths := []float64{30, 70, 20, 25, 15, 30}
	headers := []string{"SKU", "Product", "RRP", "Wholesale", "Qty", "Barcode"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		cells := []string{row.SKU, row.Name, row.RRP, row.Wholesale, row.Quantity, row.Barcode}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Line items: %d. Prices shown as stored in the catalog.", len(rows)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.GenerationError{Err: err}
	}

	filename := fmt.Sprintf("invoice_order_%s.pdf", filenameNumber(order))
	return buf.Bytes(), filename, nil
}

func displayNumber(order models.Order) string {
	if strings.TrimSpace(order.OrderNumber) != "" {
		return strings.TrimSpace(order.OrderNumber)
	}
	return fmt.Sprintf("%d", order.ID)
}

func filenameNumber(order models.Order) string {
	number := utils.SanitizeFilenamePart(order.OrderNumber)
	if number == "" {
		number = fmt.Sprintf("%d", order.ID)
	}
	return number
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
