package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "USD", Code(" usd "))
	assert.Equal(t, "GBP", Code("gbp"))
	assert.Equal(t, "", Code("   "))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("usd", "USD"))
	assert.True(t, Matches(" gbp", "GBP "))
	assert.False(t, Matches("USD", "GBP"))
}

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name       string
		expenseCcy string
		budgetCcy  string
		supplied   float64
		want       float64
	}{
		{"same currency ignores supplied rate", "USD", "USD", 2.5, 1.0},
		{"same currency case insensitive", "usd", "USD", 0.5, 1.0},
		{"cross currency uses supplied rate", "USD", "GBP", 1.5, 1.5},
		{"cross currency zero rate passes through", "EUR", "GBP", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveRate(tt.expenseCcy, tt.budgetCcy, tt.supplied))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 150.0, Normalize(100, "USD", "GBP", 1.5))
	assert.Equal(t, 100.0, Normalize(100, "gbp", "GBP", 2.0))
}
