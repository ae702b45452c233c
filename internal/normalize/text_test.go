package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "PEAJE", want: "peaje"},
		{name: "strips accents", in: "GOMERÍA", want: "gomeria"},
		{name: "trims whitespace", in: "  Teléfono  ", want: "telefono"},
		{name: "mixed", in: "José PÉREZ", want: "jose perez"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestPlate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "uppercases", in: "abcd12", want: "ABCD12"},
		{name: "strips spaces", in: "ab 123 cd", want: "AB123CD"},
		{name: "strips hyphens", in: "ABC-123", want: "ABC123"},
		{name: "strips dots", in: "AB.123.CD", want: "AB123CD"},
		{name: "trims", in: "  ppu 4483 ", want: "PPU4483"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plate(tt.in))
		})
	}
}

func TestPersonName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "capitalizes each word", in: "JUAN PEREZ", want: "Juan Perez"},
		{name: "collapses whitespace", in: "  juan   carlos  gomez ", want: "Juan Carlos Gomez"},
		{name: "keeps accented letters", in: "josé pérez", want: "José Pérez"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PersonName(tt.in))
		})
	}
}

func TestKeywords(t *testing.T) {
	in := []any{"Peaje", "TAG", "peaje", "", "Autopista", 42, "Teléfono"}
	assert.Equal(t, []string{"peaje", "tag", "autopista", "telefono"}, Keywords(in))

	assert.Empty(t, Keywords(nil))
	assert.Empty(t, Keywords([]any{"", 1, true}))
}
