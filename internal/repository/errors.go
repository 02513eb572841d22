package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// IsDuplicateKey : нарушение уникальности (23505) — например, коллизия
// последовательного идентификатора после удалений
func IsDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsNoRows : запись не найдена
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
