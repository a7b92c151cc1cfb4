// Package gs1 implements the symbolic structure checks for GS1 keys.
package gs1

import (
	"errors"
	"fmt"
	"strconv"

	"isa-agent/internal/domain/entity"
)

var ErrNotNumeric = errors.New("value must contain digits only")

var validLengths = map[entity.IdentifierType][]int{
	entity.IdentifierGTIN: {8, 12, 13, 14},
	entity.IdentifierGLN:  {13},
	entity.IdentifierSSCC: {18},
}

// CheckDigit computes the GS1 mod-10 check digit for body (the key without
// its final digit). Weights alternate 3,1 starting from the rightmost digit.
func CheckDigit(body string) (int, error) {
	if !IsNumeric(body) {
		return 0, ErrNotNumeric
	}
	sum := 0
	weight := 3
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return (10 - sum%10) % 10, nil
}

func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func LengthsFor(kind entity.IdentifierType) []int {
	return validLengths[kind]
}

// Validate runs the numeric, length and check digit checks. The check digit
// is only evaluated when the first two checks pass.
func Validate(kind entity.IdentifierType, value string) entity.ValidationResult {
	result := entity.ValidationResult{Type: kind, Value: value, Valid: true}

	numeric := IsNumeric(value)
	result.Checks = append(result.Checks, entity.ValidationCheck{
		Name:   "Numeric",
		Passed: numeric,
		Detail: ternary(numeric, "digits only", "contains non-numeric characters"),
	})

	lengths := LengthsFor(kind)
	lengthOK := containsInt(lengths, len(value))
	result.Checks = append(result.Checks, entity.ValidationCheck{
		Name:   fmt.Sprintf("Length %v", lengths),
		Passed: lengthOK,
		Detail: fmt.Sprintf("actual length %d", len(value)),
	})

	if !numeric || !lengthOK {
		result.Valid = false
		return result
	}

	body, last := value[:len(value)-1], value[len(value)-1:]
	expected, _ := CheckDigit(body)
	actual, _ := strconv.Atoi(last)
	match := expected == actual
	detail := "check digit matches calculated value"
	if !match {
		detail = fmt.Sprintf("check digit mismatch: expected %d, got %d", expected, actual)
	}
	result.Checks = append(result.Checks, entity.ValidationCheck{
		Name:   "Check digit",
		Passed: match,
		Detail: detail,
	})
	result.Valid = match
	return result
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
