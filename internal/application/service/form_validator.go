package service

import (
	"strings"

	"github.com/stockmate/stockmate-api/internal/domain/entity"
)

// Validation messages surfaced inline next to the offending fields
const (
	MsgSupplierNameRequired = "Supplier name is required"
	MsgProductNameRequired  = "Product name is required"
	MsgQuantityRequired     = "Quantity is required"
	MsgQuantityPositive     = "Quantity must be greater than 0"
	MsgCostPriceRequired    = "Cost price is required"
	MsgCostPricePositive    = "Cost price must be greater than 0"
)

// ValidateOrder checks every field of the order independently and returns the
// complete set of violations in one pass. No short-circuiting: a row missing
// its product name still gets its quantity and cost price checked. An empty
// result means the order is submittable. Pure; the order is not modified.
//
// Numeric fields are coerced leniently: text that does not parse as a number
// counts as zero, so it trips the range rule rather than a format rule.
func ValidateOrder(order *entity.Order) entity.FieldErrors {
	errs := entity.FieldErrors{}

	if strings.TrimSpace(order.Metadata.SupplierName) == "" {
		errs[entity.MetadataKey(entity.MetadataFieldSupplierName)] = MsgSupplierNameRequired
	}

	for idx := range order.Items {
		item := &order.Items[idx]

		if strings.TrimSpace(item.ProductName) == "" {
			errs[entity.ItemKey(entity.ItemFieldProductName, idx)] = MsgProductNameRequired
		}

		if strings.TrimSpace(item.Quantity) == "" {
			errs[entity.ItemKey(entity.ItemFieldQuantity, idx)] = MsgQuantityRequired
		} else if !entity.ParseAmount(item.Quantity).IsPositive() {
			errs[entity.ItemKey(entity.ItemFieldQuantity, idx)] = MsgQuantityPositive
		}

		if strings.TrimSpace(item.CostPrice) == "" {
			errs[entity.ItemKey(entity.ItemFieldCostPrice, idx)] = MsgCostPriceRequired
		} else if !entity.ParseAmount(item.CostPrice).IsPositive() {
			errs[entity.ItemKey(entity.ItemFieldCostPrice, idx)] = MsgCostPricePositive
		}
	}

	return errs
}
