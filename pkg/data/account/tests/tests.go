package tests

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/data/account"
)

func RunTests(t *testing.T, s account.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s account.Store){
		testHappyPath,
		testStaleVersion,
		testAtomicBatch,
		testDuplicateInBatch,
		testGetBatch,
		testConcurrentUpdates,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s account.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now()

		_, err := s.Get(ctx, "vault")
		assert.Equal(t, account.ErrAccountNotFound, err)

		expected := &account.Record{
			Address:  "vault",
			Owner:    "program",
			Lamports: 1_000_000,
			Data:     []byte{1, 2, 3, 4},
		}

		require.NoError(t, s.SaveBatch(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.EqualValues(t, 1, expected.Version)
		assert.True(t, expected.LastUpdatedAt.After(start))

		actual, err := s.Get(ctx, "vault")
		require.NoError(t, err)
		assertEquivalentRecords(t, expected, actual)
		assert.Equal(t, expected.Id, actual.Id)

		actual.Lamports = 500
		actual.Data = []byte{5, 6, 7, 8}
		require.NoError(t, s.SaveBatch(ctx, actual))
		assert.EqualValues(t, 2, actual.Version)
		assert.Equal(t, expected.Id, actual.Id)

		updated, err := s.Get(ctx, "vault")
		require.NoError(t, err)
		assertEquivalentRecords(t, actual, updated)

		// Draining an account keeps its record
		updated.Lamports = 0
		updated.Data = nil
		require.NoError(t, s.SaveBatch(ctx, updated))

		drained, err := s.Get(ctx, "vault")
		require.NoError(t, err)
		assert.True(t, drained.IsEmpty())
		assert.EqualValues(t, 3, drained.Version)
	})
}

func testStaleVersion(t *testing.T, s account.Store) {
	t.Run("testStaleVersion", func(t *testing.T) {
		ctx := context.Background()

		record := &account.Record{
			Address:  "wallet",
			Owner:    "system",
			Lamports: 10,
		}
		require.NoError(t, s.SaveBatch(ctx, record.Clone()))

		// Creating over an existing account
		assert.Equal(t, account.ErrStaleAccountState, s.SaveBatch(ctx, record.Clone()))

		first, err := s.Get(ctx, "wallet")
		require.NoError(t, err)
		second := first.Clone()

		first.Lamports = 20
		require.NoError(t, s.SaveBatch(ctx, first))

		second.Lamports = 30
		assert.Equal(t, account.ErrStaleAccountState, s.SaveBatch(ctx, second))
		assert.EqualValues(t, 1, second.Version)

		actual, err := s.Get(ctx, "wallet")
		require.NoError(t, err)
		assert.EqualValues(t, 20, actual.Lamports)

		// Updating an account that was never created
		missing := &account.Record{
			Address:  "missing",
			Owner:    "system",
			Lamports: 1,
			Version:  1,
		}
		assert.Equal(t, account.ErrStaleAccountState, s.SaveBatch(ctx, missing))

		_, err = s.Get(ctx, "missing")
		assert.Equal(t, account.ErrAccountNotFound, err)
	})
}

func testAtomicBatch(t *testing.T, s account.Store) {
	t.Run("testAtomicBatch", func(t *testing.T) {
		ctx := context.Background()

		existing := &account.Record{
			Address:  "existing",
			Owner:    "system",
			Lamports: 100,
		}
		require.NoError(t, s.SaveBatch(ctx, existing))

		stale := existing.Clone()
		stale.Version = 0
		stale.Lamports = 0

		fresh := &account.Record{
			Address:  "fresh",
			Owner:    "system",
			Lamports: 100,
		}

		assert.Equal(t, account.ErrStaleAccountState, s.SaveBatch(ctx, fresh, stale))

		_, err := s.Get(ctx, "fresh")
		assert.Equal(t, account.ErrAccountNotFound, err)

		actual, err := s.Get(ctx, "existing")
		require.NoError(t, err)
		assert.EqualValues(t, 100, actual.Lamports)
		assert.EqualValues(t, 1, actual.Version)

		assert.Error(t, s.SaveBatch(ctx, &account.Record{Address: "invalid"}))
	})
}

func testDuplicateInBatch(t *testing.T, s account.Store) {
	t.Run("testDuplicateInBatch", func(t *testing.T) {
		ctx := context.Background()

		first := &account.Record{Address: "dup", Owner: "system", Lamports: 1}
		second := &account.Record{Address: "dup", Owner: "system", Lamports: 2}

		assert.Equal(t, account.ErrStaleAccountState, s.SaveBatch(ctx, first, second))

		_, err := s.Get(ctx, "dup")
		assert.Equal(t, account.ErrAccountNotFound, err)
	})
}

func testGetBatch(t *testing.T, s account.Store) {
	t.Run("testGetBatch", func(t *testing.T) {
		ctx := context.Background()

		var records []*account.Record
		var addresses []string
		for i := 0; i < 10; i++ {
			record := &account.Record{
				Address:  fmt.Sprintf("account%d", i),
				Owner:    "system",
				Lamports: uint64(i + 1),
				Data:     []byte{byte(i)},
			}
			records = append(records, record)
			addresses = append(addresses, record.Address)
		}
		require.NoError(t, s.SaveBatch(ctx, records...))

		actual, err := s.GetBatch(ctx, append(addresses, "unknown")...)
		require.NoError(t, err)
		require.Len(t, actual, len(records))

		for _, expected := range records {
			assertEquivalentRecords(t, expected, actual[expected.Address])
		}

		actual, err = s.GetBatch(ctx, "unknown")
		require.NoError(t, err)
		assert.Empty(t, actual)
	})
}

func testConcurrentUpdates(t *testing.T, s account.Store) {
	t.Run("testConcurrentUpdates", func(t *testing.T) {
		ctx := context.Background()

		record := &account.Record{
			Address:  "contended",
			Owner:    "system",
			Lamports: 1,
		}
		require.NoError(t, s.SaveBatch(ctx, record))

		const writers = 10

		var wg sync.WaitGroup
		errs := make([]error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				update := record.Clone()
				update.Lamports = uint64(100 + i)
				errs[i] = s.SaveBatch(ctx, update)
			}(i)
		}
		wg.Wait()

		// Losing writers always see a stale version, never a raw db error
		winner := -1
		for i, err := range errs {
			if err == nil {
				assert.Equal(t, -1, winner)
				winner = i
				continue
			}
			assert.Equal(t, account.ErrStaleAccountState, err)
		}
		require.NotEqual(t, -1, winner)

		actual, err := s.Get(ctx, "contended")
		require.NoError(t, err)
		assert.EqualValues(t, 100+winner, actual.Lamports)
		assert.EqualValues(t, 2, actual.Version)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *account.Record) {
	require.NotNil(t, obj2)
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Owner, obj2.Owner)
	assert.Equal(t, obj1.Lamports, obj2.Lamports)
	assert.True(t, bytes.Equal(obj1.Data, obj2.Data))
	assert.Equal(t, obj1.Version, obj2.Version)
}
