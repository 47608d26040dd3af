package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText trims surrounding whitespace and converts s to Unicode NFC, so
// visually identical names collide on the unique indexes.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (in *StoreInput) Normalize() {
	in.Name = CleanText(in.Name)
}

func (in *BillboardInput) Normalize() {
	in.Label = CleanText(in.Label)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (in *CategoryInput) Normalize() {
	in.Name = CleanText(in.Name)
	in.BillboardID = strings.TrimSpace(in.BillboardID)
}

func (in *SizeInput) Normalize() {
	in.Name = CleanText(in.Name)
	in.Value = CleanText(in.Value)
}

// Normalize also lower-cases the hex value so "#FF0000" and "#ff0000" are
// the same color.
func (in *ColorInput) Normalize() {
	in.Name = CleanText(in.Name)
	in.Value = strings.ToLower(strings.TrimSpace(in.Value))
}

func (in *ProductInput) Normalize() {
	in.Name = CleanText(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ColorID = strings.TrimSpace(in.ColorID)
	in.SizeID = strings.TrimSpace(in.SizeID)
	for i := range in.Images {
		in.Images[i].URL = strings.TrimSpace(in.Images[i].URL)
	}
}
