package dto

import "github.com/shopspring/decimal"

// AdjustPricesRequest ajuste masivo de precios. Category vacía = todos los
// productos; no vacía = solo los de esa categoría (que debe existir).
// La acción del request (INCREASE o DECREASE) decide el signo.
type AdjustPricesRequest struct {
	Percent  decimal.Decimal `json:"percent"`
	Category string          `json:"category"`
}

// AdjustPricesResponse cuántos productos fueron repreciados.
type AdjustPricesResponse struct {
	Affected int64 `json:"affected"`
}
