package model

// CaseType identifies one of the two physical case product lines. Each case
// type carries independent pricing, default content, and compatibility
// curation.
type CaseType string

const (
	CaseTypeMetal CaseType = "metal"
	CaseTypeSnap  CaseType = "snap"
)

// CaseTypes lists all sellable case types in display order.
var CaseTypes = []CaseType{CaseTypeSnap, CaseTypeMetal}

// Valid reports whether the value is a known case type.
func (c CaseType) Valid() bool {
	return c == CaseTypeMetal || c == CaseTypeSnap
}

// Other returns the opposite case type.
func (c CaseType) Other() CaseType {
	if c == CaseTypeMetal {
		return CaseTypeSnap
	}
	return CaseTypeMetal
}
