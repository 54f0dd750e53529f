// Package rpc implementa el contrato de cable del sistema: una petición
// JSON terminada en newline y una respuesta por conexión TCP.
package rpc

import "encoding/json"

// Acciones admitidas en una petición.
const (
	ActionCreate   = "CREATE"
	ActionFind     = "FIND"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionList     = "LIST"
	ActionIncrease = "INCREASE"
	ActionDecrease = "DECREASE"
)

// Entidades direccionables.
const (
	EntityProduct  = "PRODUCT"
	EntityCategory = "CATEGORY"
	EntityRegistro = "REGISTRO" // movimiento del ledger
	EntityReport   = "REPORT"
)

// Estados de la respuesta.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request es el sobre de toda petición: la pareja (action, entity) decide la
// ruta y payload lleva el cuerpo específico de la operación.
type Request struct {
	Action  string          `json:"action" validate:"required,oneof=CREATE FIND UPDATE DELETE LIST INCREASE DECREASE"`
	Entity  string          `json:"entity" validate:"required,oneof=PRODUCT CATEGORY REGISTRO REPORT"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response es el sobre de toda respuesta. En error, Message lleva el texto
// legible y Data va vacío; nunca cruza un stack trace por el cable.
type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ListReportRequest selector del dataset que consume el proyector de
// reportes externo. Los tres contratos son orden ascendente por
// nombre/fecha; el formato de archivo final no es asunto de este servicio.
type ListReportRequest struct {
	Type string `json:"type" validate:"required,oneof=products categories movements"`
}

// NewSuccess arma una respuesta exitosa serializando data (nil = sin data).
func NewSuccess(message string, data any) Response {
	resp := Response{Status: StatusSuccess, Message: message}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			resp.Data = raw
		}
	}
	return resp
}

// NewError arma una respuesta de error con el mensaje dado.
func NewError(message string) Response {
	return Response{Status: StatusError, Message: message}
}
