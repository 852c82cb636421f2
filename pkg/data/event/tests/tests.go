package tests

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/data/event"
	"github.com/code-payments/code-vault/pkg/database/query"
)

func RunTests(t *testing.T, s event.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s event.Store){
		testHappyPath,
		testGetAllByTransaction,
		testGetAll,
		testGetAllByProgram,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s event.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()

		expected := &event.Record{
			EventId:     uuid.NewString(),
			Transaction: "signature",
			Program:     "program",
			Name:        "DepositEvent",
			Data:        []byte{1, 2, 3},
		}
		cloned := expected.Clone()

		_, err := s.Get(ctx, expected.EventId)
		assert.Equal(t, event.ErrEventNotFound, err)

		require.NoError(t, s.Save(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.False(t, expected.CreatedAt.IsZero())

		actual, err := s.Get(ctx, expected.EventId)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)
		assert.Equal(t, expected.Id, actual.Id)

		assert.Equal(t, event.ErrEventExists, s.Save(ctx, cloned))

		invalid := cloned.Clone()
		invalid.EventId = "invalid"
		assert.Error(t, s.Save(ctx, invalid))
	})
}

func testGetAllByTransaction(t *testing.T, s event.Store) {
	t.Run("testGetAllByTransaction", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByTransaction(ctx, "tx1")
		assert.Equal(t, event.ErrEventNotFound, err)

		var expected []*event.Record
		for i := 0; i < 3; i++ {
			record := newRecord("tx1", "vault", fmt.Sprintf("Event%d", i), time.Now())
			require.NoError(t, s.Save(ctx, record))
			expected = append(expected, record)

			require.NoError(t, s.Save(ctx, newRecord("tx2", "vault", "Other", time.Now())))
		}

		actual, err := s.GetAllByTransaction(ctx, "tx1")
		require.NoError(t, err)
		require.Len(t, actual, len(expected))
		for i := range expected {
			assertEquivalentRecords(t, expected[i], actual[i])
		}

		actual, err = s.GetAllByTransaction(ctx, "tx2")
		require.NoError(t, err)
		assert.Len(t, actual, 3)
	})
}

func testGetAll(t *testing.T, s event.Store) {
	t.Run("testGetAll", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAll(ctx, query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, event.ErrEventNotFound, err)

		var expected []*event.Record
		for i := 0; i < 10; i++ {
			record := newRecord(fmt.Sprintf("tx%d", i), "vault", "DepositEvent", time.Now())
			require.NoError(t, s.Save(ctx, record))
			expected = append(expected, record)
		}

		actual, err := s.GetAll(ctx, query.EmptyCursor, 5, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 5)
		for i := 0; i < 5; i++ {
			assertEquivalentRecords(t, expected[i], actual[i])
		}

		actual, err = s.GetAll(ctx, query.ToCursor(actual[4].Id), 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 5)
		for i := 0; i < 5; i++ {
			assertEquivalentRecords(t, expected[i+5], actual[i])
		}

		actual, err = s.GetAll(ctx, query.EmptyCursor, 3, query.Descending)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		for i := 0; i < 3; i++ {
			assertEquivalentRecords(t, expected[9-i], actual[i])
		}

		_, err = s.GetAll(ctx, query.ToCursor(expected[9].Id), 10, query.Ascending)
		assert.Equal(t, event.ErrEventNotFound, err)
	})
}

func testGetAllByProgram(t *testing.T, s event.Store) {
	t.Run("testGetAllByProgram", func(t *testing.T) {
		ctx := context.Background()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		var expected []*event.Record
		for i := 0; i < 10; i++ {
			createdAt := start.Add(time.Duration(i) * time.Hour)

			record := newRecord(fmt.Sprintf("tx%d", i), "vault", "DepositEvent", createdAt)
			require.NoError(t, s.Save(ctx, record))
			expected = append(expected, record)

			require.NoError(t, s.Save(ctx, newRecord(fmt.Sprintf("tx%d", i), "tip", "TipEvent", createdAt)))
		}

		actual, err := s.GetAllByProgram(ctx, "vault")
		require.NoError(t, err)
		require.Len(t, actual, len(expected))
		for i := range expected {
			assertEquivalentRecords(t, expected[i], actual[i])
		}

		actual, err = s.GetAllByProgram(
			ctx,
			"vault",
			query.WithStartTime(start.Add(2*time.Hour)),
			query.WithEndTime(start.Add(6*time.Hour)),
			query.WithDirection(query.Descending),
			query.WithLimit(3),
		)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		assertEquivalentRecords(t, expected[5], actual[0])
		assertEquivalentRecords(t, expected[4], actual[1])
		assertEquivalentRecords(t, expected[3], actual[2])

		actual, err = s.GetAllByProgram(
			ctx,
			"vault",
			query.WithStartTime(start.Add(2*time.Hour)),
			query.WithEndTime(start.Add(6*time.Hour)),
			query.WithDirection(query.Descending),
			query.WithCursor(query.ToCursor(actual[2].Id)),
		)
		require.NoError(t, err)
		require.Len(t, actual, 1)
		assertEquivalentRecords(t, expected[2], actual[0])

		_, err = s.GetAllByProgram(ctx, "unknown")
		assert.Equal(t, event.ErrEventNotFound, err)

		_, err = s.GetAllByProgram(ctx, "vault", query.WithLimit(0))
		assert.Equal(t, query.ErrQueryNotSupported, err)
	})
}

func newRecord(transaction, program, name string, createdAt time.Time) *event.Record {
	return &event.Record{
		EventId:     uuid.NewString(),
		Transaction: transaction,
		Program:     program,
		Name:        name,
		Data:        []byte(name),
		CreatedAt:   createdAt,
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *event.Record) {
	require.NotNil(t, obj2)
	assert.Equal(t, obj1.EventId, obj2.EventId)
	assert.Equal(t, obj1.Transaction, obj2.Transaction)
	assert.Equal(t, obj1.Program, obj2.Program)
	assert.Equal(t, obj1.Name, obj2.Name)
	assert.True(t, bytes.Equal(obj1.Data, obj2.Data))
}
