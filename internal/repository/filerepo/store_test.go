package filerepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/investogold/goldvest/pkg/uow"
)

type StoreTestSuite struct {
	suite.Suite
	path  string
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "goldvest.json")

	store, err := Open(s.path)
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TestLoadMissingKey() {
	_, err := s.store.Load("user/USER-MISSING")
	s.Require().ErrorIs(err, uow.ErrKeyNotFound)
}

func (s *StoreTestSuite) TestSaveSurvivesReopen() {
	s.Require().NoError(s.store.Save("user/USER-1", []byte(`{"id":"USER-1"}`)))

	reopened, err := Open(s.path)
	s.Require().NoError(err)

	value, loadErr := reopened.Load("user/USER-1")
	s.Require().NoError(loadErr)
	s.JSONEq(`{"id":"USER-1"}`, string(value))
}

func (s *StoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Save("user/USER-1", []byte(`{}`)))
	s.Require().NoError(s.store.Delete("user/USER-1"))

	_, err := s.store.Load("user/USER-1")
	s.Require().ErrorIs(err, uow.ErrKeyNotFound)
}

func (s *StoreTestSuite) TestScanPrefix() {
	s.Require().NoError(s.store.Save("investment/INV-2", []byte(`2`)))
	s.Require().NoError(s.store.Save("investment/INV-1", []byte(`1`)))
	s.Require().NoError(s.store.Save("user/USER-1", []byte(`{}`)))

	var keys []string
	scanErr := s.store.Scan("investment/", func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	s.Require().NoError(scanErr)
	// порядок обхода стабильный
	s.Equal([]string{"investment/INV-1", "investment/INV-2"}, keys)
}

func (s *StoreTestSuite) TestCommitAppliesAllWrites() {
	tx, beginErr := s.store.Begin(context.Background())
	s.Require().NoError(beginErr)

	s.Require().NoError(tx.Save("user/USER-1", []byte(`{"balance":"900"}`)))
	s.Require().NoError(tx.Save("investment/INV-1", []byte(`{"amount":"100"}`)))

	// до коммита стор не видит изменений
	_, loadErr := s.store.Load("user/USER-1")
	s.Require().ErrorIs(loadErr, uow.ErrKeyNotFound)

	s.Require().NoError(tx.Commit())

	// после коммита видны обе записи, в том числе после перечитывания файла
	reopened, openErr := Open(s.path)
	s.Require().NoError(openErr)

	for _, key := range []string{"user/USER-1", "investment/INV-1"} {
		_, memErr := s.store.Load(key)
		s.Require().NoError(memErr)
		_, diskErr := reopened.Load(key)
		s.Require().NoError(diskErr)
	}
}

func (s *StoreTestSuite) TestReadOnlyCommitSkipsPersist() {
	tx, beginErr := s.store.Begin(context.Background())
	s.Require().NoError(beginErr)

	_, loadErr := tx.Load("user/USER-MISSING")
	s.Require().ErrorIs(loadErr, uow.ErrKeyNotFound)
	s.Require().NoError(tx.Commit())

	// транзакция без записей не создает файл снапшота
	_, statErr := os.Stat(s.path)
	s.Require().True(os.IsNotExist(statErr))
}

func (s *StoreTestSuite) TestRollbackDiscardsWrites() {
	s.Require().NoError(s.store.Save("user/USER-1", []byte(`{"balance":"100"}`)))

	tx, beginErr := s.store.Begin(context.Background())
	s.Require().NoError(beginErr)

	s.Require().NoError(tx.Save("user/USER-1", []byte(`{"balance":"0"}`)))
	s.Require().NoError(tx.Delete("user/USER-1"))
	s.Require().NoError(tx.Rollback())

	value, loadErr := s.store.Load("user/USER-1")
	s.Require().NoError(loadErr)
	s.JSONEq(`{"balance":"100"}`, string(value))
}

func (s *StoreTestSuite) TestCommitAfterRollback() {
	tx, beginErr := s.store.Begin(context.Background())
	s.Require().NoError(beginErr)

	s.Require().NoError(tx.Rollback())
	s.Require().ErrorIs(tx.Commit(), uow.ErrTxClosed)
	s.Require().ErrorIs(tx.Rollback(), uow.ErrTxClosed)
}

func (s *StoreTestSuite) TestSequentialTransactions() {
	tx1, err1 := s.store.Begin(context.Background())
	s.Require().NoError(err1)
	s.Require().NoError(tx1.Save("user/USER-1", []byte(`1`)))
	s.Require().NoError(tx1.Commit())

	tx2, err2 := s.store.Begin(context.Background())
	s.Require().NoError(err2)
	// вторая транзакция видит результат первой
	_, loadErr := tx2.Load("user/USER-1")
	s.Require().NoError(loadErr)
	s.Require().NoError(tx2.Rollback())
}
