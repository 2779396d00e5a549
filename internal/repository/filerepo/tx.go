package filerepo

import (
	"github.com/investogold/goldvest/pkg/uow"
)

// Tx - транзакция над рабочей копией снапшота. Реализует uow.ConnTX.
type Tx struct {
	store  *Store
	staged map[string][]byte
	dirty  bool
	done   bool
}

var _ uow.ConnTX = (*Tx)(nil)

func (t *Tx) Load(key string) ([]byte, error) {
	return loadFrom(t.staged, key)
}

func (t *Tx) Save(key string, value []byte) error {
	t.staged[key] = append([]byte(nil), value...)
	t.dirty = true
	return nil
}

func (t *Tx) Delete(key string) error {
	delete(t.staged, key)
	t.dirty = true
	return nil
}

func (t *Tx) Scan(prefix string, fn func(key string, value []byte) error) error {
	return scanOver(t.staged, prefix, fn)
}

// Commit сохраняет рабочую копию на диск и подменяет снапшот в памяти.
// При ошибке записи снапшот в памяти остается прежним: для вызывающего
// операция "не произошла". Транзакция без единой записи снапшот не трогает.
func (t *Tx) Commit() error {
	if t.done {
		return uow.ErrTxClosed
	}
	t.done = true
	defer t.store.txMu.Unlock()

	if !t.dirty {
		return nil
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if err := t.store.persist(t.staged); err != nil {
		return err
	}
	t.store.records = t.staged
	return nil
}

// Rollback отбрасывает рабочую копию.
func (t *Tx) Rollback() error {
	if t.done {
		return uow.ErrTxClosed
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}
