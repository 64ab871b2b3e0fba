// Package cart models the customer's shopping cart contents as the order
// engine sees them: a flat list of entries that is read in full at submission
// and replaced in full on reorder.
package cart
