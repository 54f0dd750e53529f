package entity

import "time"

// Tamaños y empaques admitidos para una categoría (value objects conceptuales).
const (
	SizeSmall  = "SMALL"
	SizeMedium = "MEDIUM"
	SizeLarge  = "LARGE"

	PackagingCan     = "CAN"
	PackagingGlass   = "GLASS"
	PackagingPlastic = "PLASTIC"
)

// Category representa una categoría de productos.
// Name es único bajo normalización (sin acentos, mayúsculas, sin espacios extremos).
type Category struct {
	ID        int64
	Name      string
	Size      string // SMALL, MEDIUM, LARGE
	Packaging string // CAN, GLASS, PLASTIC
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidSize indica si s es un tamaño admitido.
func ValidSize(s string) bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// ValidPackaging indica si p es un empaque admitido.
func ValidPackaging(p string) bool {
	return p == PackagingCan || p == PackagingGlass || p == PackagingPlastic
}
