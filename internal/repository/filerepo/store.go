// Package filerepo реализует key-value хранилище поверх одного JSON файла.
// Весь стейт (леджер и реестр позиций) лежит в одной записи на диске, поэтому
// коммит транзакции либо фиксирует оба, либо ни одного.
package filerepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/investogold/goldvest/pkg/uow"
)

const fileMode = 0o600

type Store struct {
	// txMu сериализует писателей: держится от Begin до Commit/Rollback.
	txMu sync.Mutex
	// mu защищает records.
	mu      sync.RWMutex
	path    string
	records map[string][]byte
}

var _ uow.Conn = (*Store)(nil)

// Open открывает (или создает) файл хранилища и загружает снапшот в память.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: %s", err.Error())
	}

	s := &Store{path: path, records: make(map[string][]byte)}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return s, nil
		}
		return nil, fmt.Errorf("open store: %s", readErr.Error())
	}
	if len(data) == 0 {
		return s, nil
	}

	var raw map[string]json.RawMessage
	if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil {
		return nil, fmt.Errorf("open store: decode snapshot: %s", jsonErr.Error())
	}
	for k, v := range raw {
		s.records[k] = []byte(v)
	}
	return s, nil
}

func (s *Store) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadFrom(s.records, key)
}

// Save записывает value и сразу фиксирует снапшот на диск. При ошибке записи
// состояние в памяти не меняется.
func (s *Store) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := cloneRecords(s.records)
	staged[key] = append([]byte(nil), value...)
	if err := s.persist(staged); err != nil {
		return err
	}
	s.records = staged
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := cloneRecords(s.records)
	delete(staged, key)
	if err := s.persist(staged); err != nil {
		return err
	}
	s.records = staged
	return nil
}

func (s *Store) Scan(prefix string, fn func(key string, value []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scanOver(s.records, prefix, fn)
}

// Begin стартует транзакцию над копией снапшота. До Commit изменения видны
// только транзакции; одновременно открыта максимум одна транзакция.
func (s *Store) Begin(ctx context.Context) (uow.ConnTX, error) {
	s.txMu.Lock()
	select {
	case <-ctx.Done():
		s.txMu.Unlock()
		return nil, ctx.Err() //nolint:wrapcheck
	default:
	}

	s.mu.RLock()
	staged := cloneRecords(s.records)
	s.mu.RUnlock()

	return &Tx{store: s, staged: staged}, nil
}

// persist атомарно сохраняет снапшот: записывает во временный файл рядом и
// переименовывает поверх основного. Частично записанного файла не бывает.
func (s *Store) persist(records map[string][]byte) error {
	raw := make(map[string]json.RawMessage, len(records))
	for k, v := range records {
		raw[k] = json.RawMessage(v)
	}
	data, marshalErr := json.MarshalIndent(raw, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("persist snapshot: encode: %s", marshalErr.Error())
	}

	tmp := s.path + ".tmp"
	f, openErr := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if openErr != nil {
		return fmt.Errorf("persist snapshot: %s", openErr.Error())
	}
	if _, writeErr := f.Write(data); writeErr != nil {
		_ = f.Close()
		return fmt.Errorf("persist snapshot: %s", writeErr.Error())
	}
	if syncErr := f.Sync(); syncErr != nil {
		_ = f.Close()
		return fmt.Errorf("persist snapshot: %s", syncErr.Error())
	}
	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("persist snapshot: %s", closeErr.Error())
	}
	if renameErr := os.Rename(tmp, s.path); renameErr != nil {
		return fmt.Errorf("persist snapshot: %s", renameErr.Error())
	}
	return nil
}

func loadFrom(records map[string][]byte, key string) ([]byte, error) {
	value, ok := records[key]
	if !ok {
		return nil, uow.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func scanOver(records map[string][]byte, prefix string, fn func(key string, value []byte) error) error {
	// ключи обходим в стабильном порядке
	keys := make([]string, 0, len(records))
	for k := range records {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn(k, append([]byte(nil), records[k]...)); err != nil {
			return err
		}
	}
	return nil
}

func cloneRecords(records map[string][]byte) map[string][]byte {
	clone := make(map[string][]byte, len(records))
	for k, v := range records {
		clone[k] = v
	}
	return clone
}
