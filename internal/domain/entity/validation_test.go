package entity

import "testing"

func TestIsValidCountry(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "us", code: "us", want: true},
		{name: "gb", code: "gb", want: true},
		{name: "jp", code: "jp", want: true},
		{name: "uppercase accepted", code: "US", want: true},
		{name: "mixed case accepted", code: "Gb", want: true},
		{name: "unknown code", code: "xx", want: false},
		{name: "full name rejected", code: "france", want: false},
		{name: "empty", code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCountry(tt.code); got != tt.want {
				t.Errorf("IsValidCountry(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{name: "technology", category: "technology", want: true},
		{name: "conflict", category: "conflict", want: true},
		{name: "environment", category: "environment", want: true},
		{name: "uppercase accepted", category: "SPORTS", want: true},
		{name: "empty means all", category: "", want: true},
		{name: "unknown category", category: "gossip", want: false},
		{name: "whitespace rejected", category: " business", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCategory(tt.category); got != tt.want {
				t.Errorf("IsValidCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}
