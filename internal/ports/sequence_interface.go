package ports

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SequenceRepository выдаёт следующий идентификатор как count+1.
// Атомарности нет сознательно: после удалений идентификаторы могут
// столкнуться, и это должно всплыть как ошибка уникальности из БД.
type SequenceRepository interface {
	NextSequentialID(ctx context.Context, exec sqlx.ExtContext, table string) (int, error)
}
