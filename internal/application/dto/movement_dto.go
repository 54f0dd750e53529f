package dto

import "time"

// RegisterMovementRequest registra una entrada (IN) o salida (OUT) de stock.
// AllowNegative solo aplica a salidas: sin él, una salida que dejaría la
// cantidad en negativo se rechaza en vez de recortarse a cero.
type RegisterMovementRequest struct {
	ProductID     int64  `json:"product_id" validate:"required,gt=0"`
	Kind          string `json:"kind" validate:"required,oneof=IN OUT"`
	Amount        int64  `json:"amount"`
	AllowNegative bool   `json:"allow_negative"`
}

// ListMovementsRequest listado del historial, opcionalmente por producto.
type ListMovementsRequest struct {
	ProductName string `json:"product_name"`
}

// MovementResponse representación de salida de un movimiento de auditoría.
type MovementResponse struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	ProductName string    `json:"product_name"`
	Delta       int64     `json:"delta"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
}
