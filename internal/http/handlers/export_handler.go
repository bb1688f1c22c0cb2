package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"storeapi/internal/domain/models"
	"storeapi/internal/http/middleware"
	"storeapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// sendCSVAttachment ships a fully built CSV in one write. Building the
// whole file first means a mid-generation failure never leaves a
// truncated body that looks complete.
func sendCSVAttachment(c *gin.Context, data []byte, filename string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "text/csv", data)
}

// DownloadOrderCSV handles the customer export trigger.
// GET /api/orders/:id/export?token=...
func DownloadOrderCSV(c *gin.Context) {
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
		OrderID:     orderID,
		RequesterID: user.UserID,
		Role:        models.ExportRoleCustomer,
		Token:       utils.TrimOrEmpty(c.Query("token")),
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

// GetOrderExportToken hands the owner of a completed order the token and
// URL for the CSV download button.
// GET /api/orders/:id/export-token
func GetOrderExportToken(c *gin.Context) {
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
	token, err := svc.IssueExportToken(orderID, user.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"url":   fmt.Sprintf("/api/orders/%d/export?token=%s", orderID, token),
	})
}
