package common

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateRefNo(t *testing.T) {
	ref := GenerateRefNo()
	if len(ref) != 12 {
		t.Errorf("Expected length 12, got %d", len(ref))
	}

	// Check if it contains valid characters
	validChars := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for _, char := range ref {
		isValid := false
		for _, validChar := range validChars {
			if char == validChar {
				isValid = true
				break
			}
		}
		if !isValid {
			t.Errorf("Invalid character found: %c", char)
		}
	}
}

func TestMaskAccountNumber(t *testing.T) {
	cases := map[string]string{
		"12345678901234": "**********1234",
		"50100123456789": "**********6789",
		"1234":           "1234",
		"12":             "12",
		"":               "",
	}
	for in, want := range cases {
		if got := MaskAccountNumber(in); got != want {
			t.Errorf("MaskAccountNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	// Half up at 2dp
	if got := RoundMoney(decimal.NewFromFloat(1.66665)); got != 1.67 {
		t.Errorf("Expected 1.67, got %v", got)
	}
	if got := RoundMoney(decimal.NewFromFloat(1.664)); got != 1.66 {
		t.Errorf("Expected 1.66, got %v", got)
	}
}

func TestPercentOf(t *testing.T) {
	if got := PercentOf(500, 1); got != 5.0 {
		t.Errorf("Expected 5.0, got %v", got)
	}
	if got := PercentOf(333.33, 0.5); got != 1.67 {
		t.Errorf("Expected 1.67, got %v", got)
	}
}

func TestAddMoney(t *testing.T) {
	// 0.1 + 0.2 must come back as exactly 0.3
	if got := AddMoney(0.1, 0.2); got != 0.3 {
		t.Errorf("Expected 0.3, got %v", got)
	}
	if got := AddMoney(500, 5); got != 505.0 {
		t.Errorf("Expected 505.0, got %v", got)
	}
}

func TestPaginateResponse(t *testing.T) {
	// Test case 1: Normal pagination
	total := int64(100)
	page := 1
	limit := 10
	data := []string{"item1", "item2"}

	res := PaginateResponse(data, total, page, limit, "")

	if res.CurrentPage != 1 {
		t.Errorf("Expected CurrentPage 1, got %d", res.CurrentPage)
	}
	if res.LastPage != 10 {
		t.Errorf("Expected LastPage 10, got %d", res.LastPage)
	}
	if res.NextPage != 2 {
		t.Errorf("Expected NextPage 2, got %d", res.NextPage)
	}
	if res.PrevPage != 0 {
		t.Errorf("Expected PrevPage 0, got %d", res.PrevPage)
	}
	if res.Count != 100 {
		t.Errorf("Expected Count 100, got %d", res.Count)
	}

	// Test case 2: Last page
	page = 10
	res = PaginateResponse(data, total, page, limit, "")
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for last page, got %d", res.NextPage)
	}

	// Test case 3: Middle page
	page = 5
	res = PaginateResponse(data, total, page, limit, "")
	if res.PrevPage != 4 {
		t.Errorf("Expected PrevPage 4, got %d", res.PrevPage)
	}
	if res.NextPage != 6 {
		t.Errorf("Expected NextPage 6, got %d", res.NextPage)
	}
}
