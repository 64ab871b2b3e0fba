// Package order provides the Order aggregate root and the lifecycle state
// machine of a take-out order.
//
// The package includes:
//   - Order: the aggregate root that owns line items, status and pay status
//   - LineItem: a frozen copy of one cart entry
//   - Status: the lifecycle state machine with an explicit capability table
//   - PayStatus: the independent money-movement axis
//   - StatusChanged: the event recorded on every transition
//
// Key business rules:
//   - An order is created only by submission, in PendingPayment and Unpaid
//   - Completed and Cancelled are terminal; orders are never deleted
//   - A customer may cancel only before the merchant accepts; afterwards the
//     attempt fails with ErrContactMerchant
//   - Cancelling a paid order leaves pay status RefundPending until the
//     refund is settled with MarkRefunded
//
// Guard violations are errs.PreconditionFailedError values whose cause wraps
// ErrInvalidStatus, ErrContactMerchant or ErrAlreadyPaid, so callers can match
// them with errors.Is.
package order
