package entity

import (
	"encoding/json"
	"fmt"
)

// FieldScope distinguishes metadata fields from line-item fields in error keys
type FieldScope string

const (
	ScopeMetadata FieldScope = "metadata"
	ScopeLineItem FieldScope = "line_item"
)

// ErrorKey identifies one form field for validation purposes. Line-item keys
// carry the item's current display position, so removing an item shifts which
// key applies to which row on the next validation pass.
type ErrorKey struct {
	Scope     FieldScope
	Field     string
	ItemIndex int // display position for line-item fields, -1 for metadata
}

// MetadataKey builds the error key for an order metadata field
func MetadataKey(field MetadataField) ErrorKey {
	return ErrorKey{Scope: ScopeMetadata, Field: string(field), ItemIndex: -1}
}

// ItemKey builds the error key for a line-item field at a display position
func ItemKey(field ItemField, index int) ErrorKey {
	return ErrorKey{Scope: ScopeLineItem, Field: string(field), ItemIndex: index}
}

// String renders the key in the flat form the UI keys its inline errors by:
// "supplierName" for metadata fields, "quantity_0" for line-item fields.
func (k ErrorKey) String() string {
	if k.Scope == ScopeLineItem {
		return fmt.Sprintf("%s_%d", k.Field, k.ItemIndex)
	}
	return k.Field
}

// FieldErrors maps violated fields to human-readable messages. An empty map
// means the order is submittable.
type FieldErrors map[ErrorKey]string

// Flatten converts the map to flat string keys for transport
func (e FieldErrors) Flatten() map[string]string {
	flat := make(map[string]string, len(e))
	for key, msg := range e {
		flat[key.String()] = msg
	}
	return flat
}

func (e FieldErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Flatten())
}
