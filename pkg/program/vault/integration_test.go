package vault

import (
	"context"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memory_account_store "github.com/code-payments/code-vault/pkg/data/account/memory"
	event_store "github.com/code-payments/code-vault/pkg/data/event"
	memory_event_store "github.com/code-payments/code-vault/pkg/data/event/memory"
	"github.com/code-payments/code-vault/pkg/database/query"
	"github.com/code-payments/code-vault/pkg/event"
	"github.com/code-payments/code-vault/pkg/runtime"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
	"github.com/code-payments/code-vault/pkg/testutil"
)

func TestEventsPersistedAfterCommit(t *testing.T) {
	ctx := context.Background()

	accounts := memory_account_store.New()
	events := memory_event_store.New()

	publisher := event.NewStorePublisher(ctx, events, event.WithEnvConfigs())
	defer publisher.Close()

	env := &testEnv{
		ctx:      ctx,
		accounts: accounts,
		runtime:  runtime.New(accounts, publisher, runtime.WithEnvConfigs()),
	}
	require.NoError(t, env.runtime.RegisterProgram(New(WithEnvConfigs())))

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 100)
	vaultAddress := env.initialize(t, authority)

	require.NoError(t, env.deposit(t, depositor, vaultAddress, 60))
	require.NoError(t, env.withdraw(t, authority, vaultAddress, 25))
	env.toggleLock(t, authority, vaultAddress)

	// Failed transactions never publish
	err := env.deposit(t, depositor, vaultAddress, 10)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultLocked))

	program := base58.Encode(solana_vault.PROGRAM_ID)

	var records []*event_store.Record
	require.NoError(t, testutil.WaitFor(5*time.Second, 10*time.Millisecond, func() bool {
		records, err = events.GetAllByProgram(ctx, program, query.WithDirection(query.Ascending))
		return err == nil && len(records) == 3
	}))

	// Give any stray publication a chance to land
	time.Sleep(50 * time.Millisecond)
	records, err = events.GetAllByProgram(ctx, program)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byName := make(map[string]*event_store.Record)
	for _, record := range records {
		byName[record.Name] = record
	}
	require.Len(t, byName, 3)

	var deposit solana_vault.DepositEvent
	require.NoError(t, deposit.Unmarshal(byName[solana_vault.DepositEventName].Data))
	assert.EqualValues(t, 60, deposit.Amount)

	var withdrawal solana_vault.WithdrawEvent
	require.NoError(t, withdrawal.Unmarshal(byName[solana_vault.WithdrawEventName].Data))
	assert.EqualValues(t, 25, withdrawal.Amount)

	var toggle solana_vault.ToggleLockEvent
	require.NoError(t, toggle.Unmarshal(byName[solana_vault.ToggleLockEventName].Data))
	assert.True(t, toggle.Locked)

	assert.EqualValues(t, 35, testutil.GetBalance(t, accounts, vaultAddress))
	assert.EqualValues(t, 25, testutil.GetBalance(t, accounts, authority.PublicKey))
	assert.EqualValues(t, 40, testutil.GetBalance(t, accounts, depositor.PublicKey))
}
