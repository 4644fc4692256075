// Package application defines the finance application record and the closed
// sets of searchable fields and comparison operators used by the listing API.
package application

import (
	"fmt"
	"time"
)

// Application is a per-user finance application record. Records are never
// physically erased; IsDeleted marks them as logically removed.
type Application struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PersonalDetails string    `json:"personalDetails"`
	Income          float64   `json:"income"`
	Expenses        float64   `json:"expenses"`
	Assets          float64   `json:"assets"`
	Liabilities     float64   `json:"liabilities"`
	OwnerID         string    `json:"ownerId"`
	IsDeleted       bool      `json:"isDeleted"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Validate checks the required string fields. Numeric fields default to zero
// when omitted.
func (a Application) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("application validation failed: name is required")
	}
	if a.Description == "" {
		return fmt.Errorf("application validation failed: description is required")
	}
	if a.PersonalDetails == "" {
		return fmt.Errorf("application validation failed: personalDetails is required")
	}
	if a.OwnerID == "" {
		return fmt.Errorf("application validation failed: ownerId is required")
	}
	return nil
}

// SearchField names a column the listing endpoint may filter on.
type SearchField string

const (
	FieldName            SearchField = "name"
	FieldDescription     SearchField = "description"
	FieldPersonalDetails SearchField = "personalDetails"
	FieldIncome          SearchField = "income"
	FieldExpenses        SearchField = "expenses"
	FieldAssets          SearchField = "assets"
	FieldLiabilities     SearchField = "liabilities"
)

// ParseSearchField validates a caller-supplied filter field against the
// closed set of permitted fields.
func ParseSearchField(s string) (SearchField, bool) {
	switch SearchField(s) {
	case FieldName, FieldDescription, FieldPersonalDetails,
		FieldIncome, FieldExpenses, FieldAssets, FieldLiabilities:
		return SearchField(s), true
	}
	return "", false
}

// Numeric reports whether the field holds a number and therefore takes a
// comparison operator instead of a substring match.
func (f SearchField) Numeric() bool {
	switch f {
	case FieldIncome, FieldExpenses, FieldAssets, FieldLiabilities:
		return true
	}
	return false
}

// Comparison is a relational operator applied to numeric search fields.
// Caller input is validated against this closed set before any query is
// built, so arbitrary operator strings never reach a store.
type Comparison string

const (
	CompareGT  Comparison = "gt"
	CompareGTE Comparison = "gte"
	CompareLT  Comparison = "lt"
	CompareLTE Comparison = "lte"
	CompareEQ  Comparison = "eq"
	CompareNE  Comparison = "ne"
)

// ParseComparison validates a caller-supplied comparison operator.
func ParseComparison(s string) (Comparison, bool) {
	switch Comparison(s) {
	case CompareGT, CompareGTE, CompareLT, CompareLTE, CompareEQ, CompareNE:
		return Comparison(s), true
	}
	return "", false
}

// Matches evaluates the operator against a record value.
func (c Comparison) Matches(value, operand float64) bool {
	switch c {
	case CompareGT:
		return value > operand
	case CompareGTE:
		return value >= operand
	case CompareLT:
		return value < operand
	case CompareLTE:
		return value <= operand
	case CompareEQ:
		return value == operand
	case CompareNE:
		return value != operand
	}
	return false
}
