package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vulnshare/config"
	"vulnshare/internal/util"
)

type SequenceRepository struct {
	*config.Database
}

func NewSequenceRepository(database *config.Database) *SequenceRepository {
	return &SequenceRepository{database}
}

// NextSequentialID : следующий идентификатор для таблицы как COUNT(*)+1.
// Между чтением счётчика и вставкой нет никакой блокировки; после
// удалений счётчик может выдать уже занятый id. Дубликат не
// перехватывается здесь — нарушение PK всплывает из БД при вставке.
func (r *SequenceRepository) NextSequentialID(ctx context.Context, exec sqlx.ExtContext, table string) (int, error) {
	// имена таблиц приходят из констант кода, не от клиента
	query := fmt.Sprintf(`SELECT COUNT(*) + 1 FROM %s`, table)

	var id int
	if err := sqlx.GetContext(ctx, exec, &id, query); err != nil {
		return 0, util.LogError("[SequenceRepo] не удалось получить счётчик таблицы "+table, err)
	}
	return id, nil
}
