package common

import (
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func GenerateRefNo() string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, 12)
	for i := range result {
		result[i] = characters[r.Intn(len(characters))]
	}
	return string(result)
}

// MaskAccountNumber hides everything but the last 4 digits.
func MaskAccountNumber(account string) string {
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("*", len(account)-4) + account[len(account)-4:]
}

// RoundMoney rounds to 2 decimal places, half away from zero.
func RoundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// PercentOf computes amount * rate / 100 rounded to 2 decimal places.
func PercentOf(amount, rate float64) float64 {
	return RoundMoney(decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)))
}

// AddMoney adds two currency values without float drift.
func AddMoney(a, b float64) float64 {
	return RoundMoney(decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)))
}
