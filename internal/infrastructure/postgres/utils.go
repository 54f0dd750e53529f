package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta una violación de índice único (23505). Los
// índices únicos del esquema operan sobre las columnas name_norm, así que
// 23505 en este paquete siempre significa nombre duplicado normalizado.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation
}

const pgerrUniqueViolation = "23505"
