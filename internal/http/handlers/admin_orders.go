package handlers

import (
	"net/http"
	"strconv"

	"storeapi/internal/domain"
	"storeapi/internal/domain/models"
	"storeapi/internal/http/middleware"
	"storeapi/internal/repositories"
	"storeapi/internal/services"
	"storeapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const adminOrdersPath = "/api/admin/orders"

// ListOrders returns recent orders for the admin listing view.
// GET /api/admin/orders
func ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(utils.TrimOrEmpty(c.DefaultQuery("limit", "100")))

	repo := repositories.OrderRepository{}
	orders, err := repo.List(limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "list_failed", "failed to list orders", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// AdminDownloadOrderCSV handles the per-order export button in the admin
// order view. Produces byte-identical content to the customer trigger.
// GET /api/admin/orders/:id/export
func AdminDownloadOrderCSV(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_order_id", "invalid order id", nil)
		return
	}
	adminExportCSV(c, orderID)
}

// AdminBulkDownloadOrderCSV handles the listing-screen bulk action. A
// missing or unusable order id redirects back to the listing instead of
// erroring, matching the admin workflow.
// GET /api/admin/orders/export?post=<id>
func AdminBulkDownloadOrderCSV(c *gin.Context) {
	orderID, err := strconv.ParseInt(utils.TrimOrEmpty(c.Query("post")), 10, 64)
	if err != nil || orderID <= 0 {
		c.Redirect(http.StatusFound, adminOrdersPath)
		return
	}
	adminExportCSV(c, orderID)
}

func adminExportCSV(c *gin.Context, orderID int64) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	svc := exportService(c)
	order, err := svc.Authorize(models.ExportRequest{
		OrderID:       orderID,
		RequesterID:   user.UserID,
		Role:          models.ExportRolePrivileged,
		HasManagement: domain.HasManagementCapability(user.Role),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	data, filename, err := svc.GenerateCSV(order)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendCSVAttachment(c, data, filename)
}

// AdminOrderInvoicePDF renders the order as a printable invoice.
// GET /api/admin/orders/:id/invoice
func AdminOrderInvoicePDF(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_order_id", "invalid order id", nil)
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	svc := exportService(c)
	order, err := svc.Authorize(models.ExportRequest{
		OrderID:       orderID,
		RequesterID:   user.UserID,
		Role:          models.ExportRolePrivileged,
		HasManagement: domain.HasManagementCapability(user.Role),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	invoices := services.InvoiceService{
		Export:    svc,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := invoices.GenerateInvoice(order)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
