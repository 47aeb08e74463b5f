package utils

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError reports malformed input caught while coercing a field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RoundMoney rounds a monetary amount to two decimal places.
func RoundMoney(field string, amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &ValidationError{Field: field, Message: "must be a finite number"}
	}
	return math.Round(amount*100) / 100, nil
}

// FormatCurrency formats an amount with thousands separators and two decimals.
// Example: 15000.5 -> "15,000.50"
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", math.Abs(amount))

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + strings.Join(result, ",") + "." + decimalPart
}
