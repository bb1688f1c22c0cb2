package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"storeapi/internal/domain"
	"storeapi/internal/domain/models"
	"storeapi/internal/repositories"
	"storeapi/internal/utils"
)

// Column order is fixed; every data row carries the same six fields.
var csvHeader = []string{"SKU", "Product Name", "RRP", "Wholesale Price", "Quantity", "Barcode"}

// ExportService gates and generates order CSV exports. The Fetch* fields
// override repository access in tests.
type ExportService struct {
	OrderRepo   repositories.OrderRepository
	ProductRepo repositories.ProductRepository
	Tokens      TokenService
	RequestID   string

	FetchOrder   func(int64) (models.Order, error)
	FetchItems   func(int64) ([]models.OrderItem, error)
	FetchProduct func(int64) (models.Product, error)
	FetchMeta    func(int64, string) (string, error)
}

// ExportRow is one resolved line of the export, all fields as text.
// Missing values stay empty strings, never "null".
type ExportRow struct {
	SKU       string
	Name      string
	RRP       string
	Wholesale string
	Quantity  string
	Barcode   string
}

// Authorize applies the export access policy and returns the order on
// success. Pure read + decision: nothing is mutated, tokens are not
// consumed here.
func (s ExportService) Authorize(req models.ExportRequest) (models.Order, error) {
	if req.OrderID <= 0 {
		return models.Order{}, domain.ValidationError{Field: "order_id", Msg: "must be a positive id"}
	}

	switch req.Role {
	case models.ExportRolePrivileged:
		// Staff access: capability check only, order status waived.
		if !req.HasManagement {
			return models.Order{}, domain.InsufficientPrivilegeError{}
		}
		order, err := s.fetchOrder(req.OrderID)
		if err != nil {
			return models.Order{}, err
		}
		utils.LogEvent(s.RequestID, "export", "authorize", fmt.Sprintf("order_id=%d role=privileged", req.OrderID))
		return order, nil

	default:
		if err := s.Tokens.Verify(req.Token, req.OrderID); err != nil {
			return models.Order{}, err
		}
		order, err := s.fetchOrder(req.OrderID)
		if err != nil {
			return models.Order{}, err
		}
		if order.UserID != req.RequesterID {
			return models.Order{}, domain.NotOwnerError{OrderID: req.OrderID}
		}
		// Orders still in the pipeline can change; only completed ones
		// may leak pricing detail to the customer.
		if !order.IsCompleted() {
			return models.Order{}, domain.OrderNotCompletedError{Status: order.Status}
		}
		utils.LogEvent(s.RequestID, "export", "authorize", fmt.Sprintf("order_id=%d role=customer", req.OrderID))
		return order, nil
	}
}

// IssueExportToken hands the owner of a completed order a token for the
// customer download URL.
func (s ExportService) IssueExportToken(orderID, requesterID int64) (string, error) {
	order, err := s.fetchOrder(orderID)
	if err != nil {
		return "", err
	}
	if order.UserID != requesterID {
		return "", domain.NotOwnerError{OrderID: orderID}
	}
	if !order.IsCompleted() {
		return "", domain.OrderNotCompletedError{Status: order.Status}
	}
	return s.Tokens.Issue(orderID)
}

// GenerateCSV serializes an authorized order snapshot. Deterministic:
// the same snapshot yields identical bytes on every call.
func (s ExportService) GenerateCSV(order models.Order) ([]byte, string, error) {
	rows, err := s.ResolveRows(order)
	if err != nil {
		return nil, "", domain.GenerationError{Err: err}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, "", domain.GenerationError{Err: err}
	}
	for _, row := range rows {
		if err := w.Write([]string{row.SKU, row.Name, row.RRP, row.Wholesale, row.Quantity, row.Barcode}); err != nil {
			return nil, "", domain.GenerationError{Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", domain.GenerationError{Err: err}
	}

	utils.LogEvent(s.RequestID, "export", "generate_csv", fmt.Sprintf("order_id=%d rows=%d", order.ID, len(rows)))
	return buf.Bytes(), ExportFilename(order), nil
}

// ResolveRows maps line items to export rows in insertion order. A line
// item whose product no longer resolves still yields a row with the
// product-derived fields empty, so one deleted product cannot block the
// rest of the order.
func (s ExportService) ResolveRows(order models.Order) ([]ExportRow, error) {
	items, err := s.fetchItems(order.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(items))
	for _, it := range items {
		row := ExportRow{Quantity: strconv.Itoa(it.Quantity)}
		if product, err := s.fetchProduct(it.ProductID); err == nil {
			row.SKU = product.SKU
			row.Name = product.Name
			row.RRP = product.RegularPrice
			if v, err := s.fetchMeta(product.ID, models.MetaKeyWholesalePrice); err == nil {
				row.Wholesale = v
			}
			if v, err := s.fetchMeta(product.ID, models.MetaKeyBarcode); err == nil {
				row.Barcode = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportFilename builds "order_<number>.csv" from the display number,
// falling back to the numeric id when the number sanitizes to nothing.
func ExportFilename(order models.Order) string {
	number := utils.SanitizeFilenamePart(order.OrderNumber)
	if number == "" {
		number = strconv.FormatInt(order.ID, 10)
	}
	return "order_" + number + ".csv"
}

func (s ExportService) fetchOrder(id int64) (models.Order, error) {
	if s.FetchOrder != nil {
		return s.FetchOrder(id)
	}
	return s.OrderRepo.GetByID(id)
}

func (s ExportService) fetchItems(orderID int64) ([]models.OrderItem, error) {
	if s.FetchItems != nil {
		return s.FetchItems(orderID)
	}
	return s.OrderRepo.ListItems(orderID)
}

func (s ExportService) fetchProduct(id int64) (models.Product, error) {
	if s.FetchProduct != nil {
		return s.FetchProduct(id)
	}
	return s.ProductRepo.GetByID(id)
}

func (s ExportService) fetchMeta(productID int64, key string) (string, error) {
	if s.FetchMeta != nil {
		return s.FetchMeta(productID, key)
	}
	return s.ProductRepo.GetMeta(productID, key)
}
