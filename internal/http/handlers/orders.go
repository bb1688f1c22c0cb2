package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"storeapi/internal/domain"
	"storeapi/internal/http/middleware"
	"storeapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GetOrder returns the order detail for its owner (or staff). For a
// completed owned order the payload carries a ready-made export link,
// mirroring the download button on the order details page.
// GET /api/orders/:id
func GetOrder(c *gin.Context) {
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

	repo := repositories.OrderRepository{}
	order, err := repo.GetByID(orderID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if order.UserID != user.UserID && !domain.HasManagementCapability(user.Role) {
		RespondDomainError(c, domain.NotOwnerError{OrderID: orderID})
		return
	}

	items, err := repo.ListItems(orderID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payload := gin.H{
		"order": order,
		"items": items,
	}

	// Export link only for the owner of a completed order; staff use the
	// admin endpoints instead.
	if order.UserID == user.UserID && order.IsCompleted() {
		if token, err := tokenService().Issue(orderID); err == nil {
			payload["export"] = gin.H{
				"token": token,
				"url":   fmt.Sprintf("/api/orders/%d/export?token=%s", orderID, token),
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}
