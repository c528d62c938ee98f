// Package currency holds the pure conversion helpers used when an expense
// is normalized into its budget's currency.
package currency

import "strings"

// Code normalizes a currency code to its canonical upper-case form
func Code(ccy string) string {
	return strings.ToUpper(strings.TrimSpace(ccy))
}

// Matches reports whether two currency codes denote the same currency
func Matches(a, b string) bool {
	return Code(a) == Code(b)
}

// EffectiveRate returns the rate actually applied when converting an
// expense amount into the budget currency. A caller-supplied rate is only
// honoured when the currencies differ; on a match the rate is forced to 1
// so a stray value cannot skew the ledger.
func EffectiveRate(expenseCcy, budgetCcy string, suppliedRate float64) float64 {
	if Matches(expenseCcy, budgetCcy) {
		return 1.0
	}
	return suppliedRate
}

// Normalize converts an expense amount into the budget currency
func Normalize(amount float64, expenseCcy, budgetCcy string, suppliedRate float64) float64 {
	return amount * EffectiveRate(expenseCcy, budgetCcy, suppliedRate)
}
