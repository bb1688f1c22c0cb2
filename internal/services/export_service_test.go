package services

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"storeapi/internal/domain"
	"storeapi/internal/domain/models"
)

func testTokenService() TokenService {
	return TokenService{Secret: []byte("test-secret"), TTL: time.Hour}
}

func testExportService() ExportService {
	order := models.Order{
		ID:          1042,
		OrderNumber: "1042",
		UserID:      7,
		Status:      models.OrderStatusCompleted,
	}
	products := map[int64]models.Product{
		1: {ID: 1, SKU: "ABC-1", Name: "Widget", RegularPrice: "19.99"},
	}
	meta := map[string]string{
		"1/" + models.MetaKeyWholesalePrice: "9.99",
		"1/" + models.MetaKeyBarcode:        "0123456789",
	}

	return ExportService{
		Tokens: testTokenService(),
		FetchOrder: func(id int64) (models.Order, error) {
			if id != order.ID {
				return models.Order{}, domain.NotFoundError{Resource: "order"}
			}
			return order, nil
		},
		FetchItems: func(orderID int64) ([]models.OrderItem, error) {
			return []models.OrderItem{
				{ID: 1, OrderID: orderID, ProductID: 1, Quantity: 3},
			}, nil
		},
		FetchProduct: func(id int64) (models.Product, error) {
			p, ok := products[id]
			if !ok {
				return models.Product{}, domain.NotFoundError{Resource: "product"}
			}
			return p, nil
		},
		FetchMeta: func(productID int64, key string) (string, error) {
			return meta[fmt.Sprintf("%d/%s", productID, key)], nil
		},
	}
}

func TestAuthorizeOwnerWithValidToken(t *testing.T) {
	svc := testExportService()
	token, err := svc.Tokens.Issue(1042)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	order, err := svc.Authorize(models.ExportRequest{
		OrderID:     1042,
		RequesterID: 7,
		Role:        models.ExportRoleCustomer,
		Token:       token,
	})
	if err != nil {
		t.Fatalf("expected authorization, got %v", err)
	}
	if order.ID != 1042 {
		t.Fatalf("wrong order returned: %d", order.ID)
	}
}

func TestAuthorizeRejectsNonOwner(t *testing.T) {
	svc := testExportService()
	token, _ := svc.Tokens.Issue(1042)

	_, err := svc.Authorize(models.ExportRequest{
		OrderID:     1042,
		RequesterID: 9,
		Role:        models.ExportRoleCustomer,
		Token:       token,
	})
	if !domain.IsNotOwner(err) {
		t.Fatalf("expected NotOwnerError, got %v", err)
	}
}

func TestAuthorizeRejectsIncompleteOrder(t *testing.T) {
	svc := testExportService()
	svc.FetchOrder = func(id int64) (models.Order, error) {
		return models.Order{ID: id, OrderNumber: "1042", UserID: 7, Status: models.OrderStatusProcessing}, nil
	}
	token, _ := svc.Tokens.Issue(1042)

	_, err := svc.Authorize(models.ExportRequest{
		OrderID:     1042,
		RequesterID: 7,
		Role:        models.ExportRoleCustomer,
		Token:       token,
	})
	if !domain.IsOrderNotCompleted(err) {
		t.Fatalf("expected OrderNotCompletedError, got %v", err)
	}
}

func TestAuthorizeRejectsInvalidToken(t *testing.T) {
	svc := testExportService()

	for _, token := range []string{"", "garbage", mustIssue(t, svc.Tokens, 9999)} {
		_, err := svc.Authorize(models.ExportRequest{
			OrderID:     1042,
			RequesterID: 7,
			Role:        models.ExportRoleCustomer,
			Token:       token,
		})
		if !domain.IsInvalidToken(err) {
			t.Fatalf("token %q: expected InvalidTokenError, got %v", token, err)
		}
	}
}

func TestAuthorizePrivilegedWaivesStatusAndOwnership(t *testing.T) {
	svc := testExportService()
	svc.FetchOrder = func(id int64) (models.Order, error) {
		return models.Order{ID: id, OrderNumber: "1042", UserID: 7, Status: models.OrderStatusPending}, nil
	}

	order, err := svc.Authorize(models.ExportRequest{
		OrderID:       1042,
		RequesterID:   99,
		Role:          models.ExportRolePrivileged,
		HasManagement: true,
	})
	if err != nil {
		t.Fatalf("expected authorization, got %v", err)
	}
	if order.ID != 1042 {
		t.Fatalf("wrong order returned: %d", order.ID)
	}
}

func TestAuthorizePrivilegedWithoutCapability(t *testing.T) {
	svc := testExportService()

	_, err := svc.Authorize(models.ExportRequest{
		OrderID:     1042,
		RequesterID: 99,
		Role:        models.ExportRolePrivileged,
	})
	if !domain.IsInsufficientPrivilege(err) {
		t.Fatalf("expected InsufficientPrivilegeError, got %v", err)
	}
}

func TestAuthorizeMissingOrder(t *testing.T) {
	svc := testExportService()
	token, _ := svc.Tokens.Issue(555)

	_, err := svc.Authorize(models.ExportRequest{
		OrderID:     555,
		RequesterID: 7,
		Role:        models.ExportRoleCustomer,
		Token:       token,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGenerateCSVScenario(t *testing.T) {
	svc := testExportService()
	order, _ := svc.FetchOrder(1042)

	data, filename, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := "SKU,Product Name,RRP,Wholesale Price,Quantity,Barcode\n" +
		"ABC-1,Widget,19.99,9.99,3,0123456789\n"
	if string(data) != want {
		t.Fatalf("csv mismatch:\ngot  %q\nwant %q", string(data), want)
	}
	if filename != "order_1042.csv" {
		t.Fatalf("filename mismatch: %q", filename)
	}
}

func TestGenerateCSVDeterministic(t *testing.T) {
	svc := testExportService()
	order, _ := svc.FetchOrder(1042)

	first, _, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, _, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("same snapshot produced different bytes")
	}
}

func TestGenerateCSVEmptyOrderHasHeaderOnly(t *testing.T) {
	svc := testExportService()
	svc.FetchItems = func(int64) ([]models.OrderItem, error) {
		return nil, nil
	}
	order, _ := svc.FetchOrder(1042)

	data, _, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "SKU,Product Name,RRP,Wholesale Price,Quantity,Barcode\n"
	if string(data) != want {
		t.Fatalf("expected header-only file, got %q", string(data))
	}
}

func TestGenerateCSVRowCountMatchesItems(t *testing.T) {
	svc := testExportService()
	svc.FetchItems = func(orderID int64) ([]models.OrderItem, error) {
		return []models.OrderItem{
			{ID: 1, OrderID: orderID, ProductID: 1, Quantity: 3},
			{ID: 2, OrderID: orderID, ProductID: 1, Quantity: 1},
			{ID: 3, OrderID: orderID, ProductID: 1, Quantity: 5},
		}, nil
	}
	order, _ := svc.FetchOrder(1042)

	data, _, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
}

func TestGenerateCSVMissingProductKeepsRow(t *testing.T) {
	svc := testExportService()
	svc.FetchItems = func(orderID int64) ([]models.OrderItem, error) {
		return []models.OrderItem{
			{ID: 1, OrderID: orderID, ProductID: 777, Quantity: 3},
		}, nil
	}
	order, _ := svc.FetchOrder(1042)

	data, _, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "SKU,Product Name,RRP,Wholesale Price,Quantity,Barcode\n,,,,3,\n"
	if string(data) != want {
		t.Fatalf("csv mismatch:\ngot  %q\nwant %q", string(data), want)
	}
}

func TestGenerateCSVQuotesSpecialCharacters(t *testing.T) {
	svc := testExportService()
	products := map[int64]models.Product{
		1: {ID: 1, SKU: "ABC-1", Name: `Widget, "Large"`, RegularPrice: "19.99"},
		2: {ID: 2, SKU: "DEF-2", Name: "Line1\nLine2", RegularPrice: "5.00"},
	}
	svc.FetchProduct = func(id int64) (models.Product, error) {
		p, ok := products[id]
		if !ok {
			return models.Product{}, domain.NotFoundError{Resource: "product"}
		}
		return p, nil
	}
	svc.FetchMeta = func(int64, string) (string, error) { return "", nil }
	svc.FetchItems = func(orderID int64) ([]models.OrderItem, error) {
		return []models.OrderItem{
			{ID: 1, OrderID: orderID, ProductID: 1, Quantity: 3},
			{ID: 2, OrderID: orderID, ProductID: 2, Quantity: 1},
		}, nil
	}
	order, _ := svc.FetchOrder(1042)

	data, _, err := svc.GenerateCSV(order)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Fields holding the delimiter, quotes or line breaks must come out
	// quoted, with internal quotes doubled.
	want := "SKU,Product Name,RRP,Wholesale Price,Quantity,Barcode\n" +
		"ABC-1,\"Widget, \"\"Large\"\"\",19.99,,3,\n" +
		"DEF-2,\"Line1\nLine2\",5.00,,1,\n"
	if string(data) != want {
		t.Fatalf("csv mismatch:\ngot  %q\nwant %q", string(data), want)
	}
}

func TestExportFilenameSanitized(t *testing.T) {
	cases := []struct {
		order models.Order
		want  string
	}{
		{models.Order{ID: 1042, OrderNumber: "1042"}, "order_1042.csv"},
		{models.Order{ID: 1042, OrderNumber: "#10 42/../x"}, "order_1042x.csv"},
		{models.Order{ID: 7, OrderNumber: "  "}, "order_7.csv"},
		{models.Order{ID: 7, OrderNumber: "///"}, "order_7.csv"},
	}
	for _, tc := range cases {
		if got := ExportFilename(tc.order); got != tc.want {
			t.Fatalf("number %q: got %q want %q", tc.order.OrderNumber, got, tc.want)
		}
	}
}

func TestIssueExportTokenOwnerOnly(t *testing.T) {
	svc := testExportService()

	token, err := svc.IssueExportToken(1042, 7)
	if err != nil {
		t.Fatalf("owner issuance failed: %v", err)
	}
	if err := svc.Tokens.Verify(token, 1042); err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}

	if _, err := svc.IssueExportToken(1042, 9); !domain.IsNotOwner(err) {
		t.Fatalf("expected NotOwnerError, got %v", err)
	}
}

func mustIssue(t *testing.T, tokens TokenService, orderID int64) string {
	t.Helper()
	token, err := tokens.Issue(orderID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}
