package entity

type IdentifierType string

const (
	IdentifierGTIN IdentifierType = "GTIN"
	IdentifierGLN  IdentifierType = "GLN"
	IdentifierSSCC IdentifierType = "SSCC"
)

type ValidationCheck struct {
	Name   string
	Passed bool
	Detail string
}

type ValidationResult struct {
	Type   IdentifierType
	Value  string
	Valid  bool
	Checks []ValidationCheck
}
