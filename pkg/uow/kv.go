package uow

import "context"

// DBTX - синхронная key-value поверхность хранилища, поверх которой работают
// репозитории. Значения - непрозрачные записи (валидный JSON). Load возвращает
// ErrKeyNotFound для отсутствующего ключа.
type DBTX interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
	Scan(prefix string, fn func(key string, value []byte) error) error
}

// Conn - подключение к хранилищу. Вне транзакции каждая запись фиксируется
// сразу (auto-commit).
type Conn interface {
	DBTX
	Begin(ctx context.Context) (ConnTX, error)
}

// ConnTX - транзакция хранилища. Изменения видны только внутри транзакции
// до Commit; Commit фиксирует все накопленные изменения как один снапшот.
type ConnTX interface {
	DBTX
	Commit() error
	Rollback() error
}
