// Package kernel provides the value objects shared by the order and cart models.
//
// The package includes:
//   - Money: a non-negative decimal amount with two-place minor units
//   - OrderNumber: the caller-visible, time-derived order token
//   - DeliveryAddress: the consignee, phone and address text copied into an order
//
// All values are immutable and carry a ConstructorGuard, so a zero value
// fails Validate and cannot be mistaken for a legitimate empty value.
package kernel
