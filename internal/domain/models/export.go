package models

// Requester roles for an export request. Customer requests are gated by
// ownership, order status and the integrity token; privileged requests by
// the management capability.
const (
	ExportRoleCustomer   = "customer"
	ExportRolePrivileged = "privileged"
)

// ExportRequest is built per inbound export call and discarded after the
// response is sent.
type ExportRequest struct {
	OrderID       int64
	RequesterID   int64
	Role          string
	Token         string
	HasManagement bool
}
