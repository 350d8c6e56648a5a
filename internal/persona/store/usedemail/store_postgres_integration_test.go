//go:build integration

package usedemail_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	usedemailstore "persona/internal/persona/store/usedemail"
	id "persona/pkg/domain"
	"persona/pkg/platform/sentinel"
	"persona/pkg/testutil/containers"
)

type PostgresLedgerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *usedemailstore.Postgres
}

func TestPostgresLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresLedgerSuite))
}

func (s *PostgresLedgerSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = usedemailstore.NewPostgres(s.postgres.DB)
}

func (s *PostgresLedgerSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "used_emails"))
}

func (s *PostgresLedgerSuite) TestReserveSemantics() {
	ctx := context.Background()
	owner := id.UserID(uuid.New())
	other := id.UserID(uuid.New())

	s.Require().NoError(s.store.Reserve(ctx, "a@mypersona.tk", owner))
	s.Require().NoError(s.store.Reserve(ctx, "a@mypersona.tk", owner), "same-owner re-reserve succeeds")
	s.Require().ErrorIs(s.store.Reserve(ctx, "a@mypersona.tk", other), sentinel.ErrAlreadyUsed)

	entry, err := s.store.FindByEmail(ctx, "a@mypersona.tk")
	s.Require().NoError(err)
	s.Equal(owner, entry.OwnerID)

	_, err = s.store.FindByEmail(ctx, "missing@mypersona.tk")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentReserve verifies the insert-if-absent is atomic at the
// database: many racing owners, exactly one winner.
func (s *PostgresLedgerSuite) TestConcurrentReserve() {
	const goroutines = 50
	ctx := context.Background()

	var wg sync.WaitGroup
	var wins atomic.Int32

	for i := 0; i < goroutines; i++ {
		owner := id.UserID(uuid.New())
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.Reserve(ctx, "contended@mypersona.tk", owner); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
}
