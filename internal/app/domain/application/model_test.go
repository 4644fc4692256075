package application

import "testing"

func TestParseSearchField(t *testing.T) {
	for _, valid := range []string{
		"name", "description", "personalDetails",
		"income", "expenses", "assets", "liabilities",
	} {
		if _, ok := ParseSearchField(valid); !ok {
			t.Errorf("ParseSearchField(%q) rejected a valid field", valid)
		}
	}
	for _, invalid := range []string{"", "ownerId", "isDeleted", "Name", "INCOME", "createdAt"} {
		if _, ok := ParseSearchField(invalid); ok {
			t.Errorf("ParseSearchField(%q) accepted an invalid field", invalid)
		}
	}
}

func TestSearchFieldNumeric(t *testing.T) {
	numeric := map[SearchField]bool{
		FieldName:            false,
		FieldDescription:     false,
		FieldPersonalDetails: false,
		FieldIncome:          true,
		FieldExpenses:        true,
		FieldAssets:          true,
		FieldLiabilities:     true,
	}
	for field, want := range numeric {
		if got := field.Numeric(); got != want {
			t.Errorf("%s.Numeric() = %v, want %v", field, got, want)
		}
	}
}

func TestParseComparison(t *testing.T) {
	for _, valid := range []string{"gt", "gte", "lt", "lte", "eq", "ne"} {
		if _, ok := ParseComparison(valid); !ok {
			t.Errorf("ParseComparison(%q) rejected a valid operator", valid)
		}
	}
	for _, invalid := range []string{"", "like", "GTE", ">=", "in"} {
		if _, ok := ParseComparison(invalid); ok {
			t.Errorf("ParseComparison(%q) accepted an invalid operator", invalid)
		}
	}
}

func TestComparisonMatches(t *testing.T) {
	tests := []struct {
		c       Comparison
		value   float64
		operand float64
		want    bool
	}{
		{CompareGT, 5, 4, true},
		{CompareGT, 4, 4, false},
		{CompareGTE, 4, 4, true},
		{CompareLT, 3, 4, true},
		{CompareLTE, 4, 4, true},
		{CompareLTE, 5, 4, false},
		{CompareEQ, 4, 4, true},
		{CompareEQ, 5, 4, false},
		{CompareNE, 5, 4, true},
		{CompareNE, 4, 4, false},
	}
	for _, tt := range tests {
		if got := tt.c.Matches(tt.value, tt.operand); got != tt.want {
			t.Errorf("%s.Matches(%v, %v) = %v, want %v", tt.c, tt.value, tt.operand, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Application{
		Name:            "Car loan",
		Description:     "new car",
		PersonalDetails: "details",
		OwnerID:         "owner-1",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for name, mutate := range map[string]func(*Application){
		"missing name":            func(a *Application) { a.Name = "" },
		"missing description":     func(a *Application) { a.Description = "" },
		"missing personalDetails": func(a *Application) { a.PersonalDetails = "" },
		"missing owner":           func(a *Application) { a.OwnerID = "" },
	} {
		app := valid
		mutate(&app)
		if err := app.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
