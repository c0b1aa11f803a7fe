package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	codeInvalidTextRep    = "22P02"
	codeNumericOutOfRange = "22003"
)

// pgErrorCode возвращает SQLSTATE для pgx/v5 (pgconn.PgError) и lib/pq драйверов
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isInvalidValue проверяет ошибки преобразования значения на стороне БД (например, category вне диапазона integer)
func isInvalidValue(err error) bool {
	code := pgErrorCode(err)
	return code == codeInvalidTextRep || code == codeNumericOutOfRange
}
