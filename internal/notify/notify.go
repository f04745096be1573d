// Package notify sends email notifications after order and reorder
// writes. Delivery is asynchronous and best-effort: a failed send is
// logged and never surfaces to the request that triggered it.
package notify

import (
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
)

type Service interface {
	OrderCreated(order orderdomain.Order)
	OrderUpdated(order orderdomain.Order)
	ReorderCreated(reorder reorderdomain.Reorder, original orderdomain.Order)

	// Wait blocks until all in-flight notifications have finished.
	Wait()
}
