package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// isUniqueViolation detecta violaciones de constraint único.
func isUniqueViolation(err error) bool { return hasSQLState(err, codeUniqueViolation) }

// isForeignKeyViolation detecta inserciones que referencian filas inexistentes.
func isForeignKeyViolation(err error) bool { return hasSQLState(err, codeForeignKeyViolation) }
