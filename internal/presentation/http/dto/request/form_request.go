package request

// UpdateItemRequest sets one field of a purchase line item. Value is always
// the raw text from the form; numeric and date fields are interpreted by the
// engine.
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateMetadataRequest sets one order metadata field
type UpdateMetadataRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// PurchaseFilterRequest represents recorded-purchase filter parameters
type PurchaseFilterRequest struct {
	Search      string `form:"search"`
	PaymentMode string `form:"payment_mode"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
}
