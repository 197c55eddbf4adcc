package orders

import "greennest/models"

// CanView: an order is visible to its owner and to admins, nobody else.
// Denial is an authorization failure, not a missing order.
func CanView(order models.Order, userID string, isAdmin bool) bool {
	return order.UserID == userID || isAdmin
}
