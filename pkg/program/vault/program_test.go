package vault

import (
	"context"
	"crypto/ed25519"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/data/account"
	memory_account_store "github.com/code-payments/code-vault/pkg/data/account/memory"
	"github.com/code-payments/code-vault/pkg/event"
	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
	"github.com/code-payments/code-vault/pkg/testutil"
)

func TestInitialize(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 1_000)
	vaultAddress := env.initialize(t, authority)

	actual := env.getVault(t, vaultAddress)
	assert.EqualValues(t, authority.PublicKey, actual.Authority)
	assert.False(t, actual.Locked)

	info, err := env.runtime.GetAccount(env.ctx, vaultAddress)
	require.NoError(t, err)
	assert.EqualValues(t, solana_vault.PROGRAM_ID, info.Owner)
	assert.Len(t, info.Data, solana_vault.VaultAccountSize)
	assert.EqualValues(t, 0, info.Lamports)
	assert.EqualValues(t, 1_000, testutil.GetBalance(t, env.accounts, authority.PublicKey))

	err = env.submit(t, []*testutil.Account{authority}, solana_vault.NewInitializeInstruction(
		&solana_vault.InitializeInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.InitializeInstructionArgs{},
	))
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultAlreadyInitialized))
}

func TestInitialize_InvalidAddress(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 1_000)
	other := testutil.NewRandomAccount(t)

	otherVault, _, err := solana_vault.GetVaultAddress(other.PublicKey)
	require.NoError(t, err)

	err = env.submit(t, []*testutil.Account{authority}, solana_vault.NewInitializeInstruction(
		&solana_vault.InitializeInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     otherVault,
		},
		&solana_vault.InitializeInstructionArgs{},
	))
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInvalidVaultAddress))
}

func TestInitialize_MissingSignature(t *testing.T) {
	env := setup(t)

	payer := env.newFundedAccount(t, 1_000)
	authority := testutil.NewRandomAccount(t)

	vaultAddress, _, err := solana_vault.GetVaultAddress(authority.PublicKey)
	require.NoError(t, err)

	ix := solana_vault.NewInitializeInstruction(
		&solana_vault.InitializeInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.InitializeInstructionArgs{},
	)
	ix.Accounts[0].IsSigner = false

	err = env.submit(t, []*testutil.Account{payer}, ix)
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorMissingRequiredSignature)
}

func TestDeposit(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 500)
	vaultAddress := env.initialize(t, authority)

	require.NoError(t, env.deposit(t, depositor, vaultAddress, 200))
	assert.EqualValues(t, 300, testutil.GetBalance(t, env.accounts, depositor.PublicKey))
	assert.EqualValues(t, 200, testutil.GetBalance(t, env.accounts, vaultAddress))

	// Anyone may deposit, including the authority
	env.fund(t, authority, 50)
	require.NoError(t, env.deposit(t, authority, vaultAddress, 50))
	assert.EqualValues(t, 250, testutil.GetBalance(t, env.accounts, vaultAddress))

	deposits := env.publisher.eventsNamed(solana_vault.DepositEventName)
	require.Len(t, deposits, 2)

	var actual solana_vault.DepositEvent
	require.NoError(t, actual.Unmarshal(deposits[0].Event.Marshal()))
	assert.EqualValues(t, 200, actual.Amount)
	assert.EqualValues(t, depositor.PublicKey, actual.Depositor)
	assert.EqualValues(t, vaultAddress, actual.Vault)
	assert.EqualValues(t, solana_vault.PROGRAM_ID, deposits[0].Program)
}

func TestDeposit_Validation(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 100)
	vaultAddress := env.initialize(t, authority)

	err := env.deposit(t, depositor, vaultAddress, 0)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInvalidAmount))

	err = env.deposit(t, depositor, vaultAddress, 101)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInsufficientBalance))

	env.toggleLock(t, authority, vaultAddress)

	err = env.deposit(t, depositor, vaultAddress, 50)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultLocked))

	// Amount is validated before the lock
	err = env.deposit(t, depositor, vaultAddress, 0)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInvalidAmount))

	// Balance is validated before the lock
	err = env.deposit(t, depositor, vaultAddress, 101)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInsufficientBalance))

	assert.EqualValues(t, 100, testutil.GetBalance(t, env.accounts, depositor.PublicKey))
	assert.EqualValues(t, 0, testutil.GetBalance(t, env.accounts, vaultAddress))
	assert.Empty(t, env.publisher.eventsNamed(solana_vault.DepositEventName))
}

func TestDeposit_UninitializedVault(t *testing.T) {
	env := setup(t)

	authority := testutil.NewRandomAccount(t)
	depositor := env.newFundedAccount(t, 100)

	vaultAddress, _, err := solana_vault.GetVaultAddress(authority.PublicKey)
	require.NoError(t, err)

	err = env.deposit(t, depositor, vaultAddress, 10)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultNotInitialized))
}

func TestDeposit_ForeignAccount(t *testing.T) {
	env := setup(t)

	depositor := env.newFundedAccount(t, 100)
	foreign := env.newFundedAccount(t, 10)

	err := env.deposit(t, depositor, foreign.PublicKey, 10)
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorIncorrectProgramID)
}

func TestDeposit_NonDerivedVault(t *testing.T) {
	env := setup(t)

	authority := testutil.NewRandomAccount(t)
	depositor := env.newFundedAccount(t, 100)

	// A program-owned account with valid vault data at an address that doesn't
	// derive from its authority
	address := testutil.NewRandomAccount(t).PublicKey
	state := &solana_vault.VaultAccount{Authority: authority.PublicKey}
	require.NoError(t, env.accounts.SaveBatch(env.ctx, &account.Record{
		Address: base58.Encode(address),
		Owner:   base58.Encode(solana_vault.PROGRAM_ID),
		Data:    state.Marshal(),
	}))

	err := env.deposit(t, depositor, address, 10)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInvalidVaultAddress))

	err = env.withdraw(t, authority, address, 10)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInvalidVaultAddress))
}

func TestWithdraw(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 500)
	vaultAddress := env.initialize(t, authority)

	require.NoError(t, env.deposit(t, depositor, vaultAddress, 300))

	env.fund(t, authority, 5)
	require.NoError(t, env.withdraw(t, authority, vaultAddress, 120))
	assert.EqualValues(t, 125, testutil.GetBalance(t, env.accounts, authority.PublicKey))
	assert.EqualValues(t, 180, testutil.GetBalance(t, env.accounts, vaultAddress))

	require.NoError(t, env.withdraw(t, authority, vaultAddress, 180))
	assert.EqualValues(t, 305, testutil.GetBalance(t, env.accounts, authority.PublicKey))
	assert.EqualValues(t, 0, testutil.GetBalance(t, env.accounts, vaultAddress))

	// The vault survives being emptied
	actual := env.getVault(t, vaultAddress)
	assert.EqualValues(t, authority.PublicKey, actual.Authority)

	withdrawals := env.publisher.eventsNamed(solana_vault.WithdrawEventName)
	require.Len(t, withdrawals, 2)

	var withdrawal solana_vault.WithdrawEvent
	require.NoError(t, withdrawal.Unmarshal(withdrawals[0].Event.Marshal()))
	assert.EqualValues(t, 120, withdrawal.Amount)
	assert.EqualValues(t, vaultAddress, withdrawal.Vault)
	assert.EqualValues(t, authority.PublicKey, withdrawal.Authority)
}

func TestWithdraw_Validation(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 1)
	depositor := env.newFundedAccount(t, 100)
	vaultAddress := env.initialize(t, authority)

	require.NoError(t, env.deposit(t, depositor, vaultAddress, 100))

	err := env.withdraw(t, authority, vaultAddress, 0)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInvalidAmount))

	err = env.withdraw(t, authority, vaultAddress, 101)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInsufficientBalance))

	env.toggleLock(t, authority, vaultAddress)

	// The lock is validated before the balance
	err = env.withdraw(t, authority, vaultAddress, 101)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultLocked))

	err = env.withdraw(t, authority, vaultAddress, 10)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultLocked))

	// Authority is validated before everything else
	attacker := env.newFundedAccount(t, 1)
	err = env.withdraw(t, attacker, vaultAddress, 0)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrUnauthorized))

	assert.EqualValues(t, 100, testutil.GetBalance(t, env.accounts, vaultAddress))
	assert.Empty(t, env.publisher.eventsNamed(solana_vault.WithdrawEventName))
}

func TestWithdraw_AuthorityMustSign(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 1)
	depositor := env.newFundedAccount(t, 100)
	vaultAddress := env.initialize(t, authority)

	require.NoError(t, env.deposit(t, depositor, vaultAddress, 100))

	ix := solana_vault.NewWithdrawInstruction(
		&solana_vault.WithdrawInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.WithdrawInstructionArgs{Amount: 100},
	)
	ix.Accounts[0].IsSigner = false

	err := env.submit(t, []*testutil.Account{depositor}, ix)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrUnauthorized))
	assert.EqualValues(t, 100, testutil.GetBalance(t, env.accounts, vaultAddress))
}

func TestToggleLock(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 1)
	vaultAddress := env.initialize(t, authority)

	for i := 0; i < 4; i++ {
		before := env.getVault(t, vaultAddress)
		env.toggleLock(t, authority, vaultAddress)
		assert.Equal(t, !before.Locked, env.getVault(t, vaultAddress).Locked)
	}
	assert.False(t, env.getVault(t, vaultAddress).Locked)

	events := env.publisher.eventsNamed(solana_vault.ToggleLockEventName)
	require.Len(t, events, 4)
	for i, emitted := range events {
		var actual solana_vault.ToggleLockEvent
		require.NoError(t, actual.Unmarshal(emitted.Event.Marshal()))
		assert.Equal(t, i%2 == 0, actual.Locked)
		assert.EqualValues(t, vaultAddress, actual.Vault)
		assert.EqualValues(t, authority.PublicKey, actual.Authority)
	}

	attacker := env.newFundedAccount(t, 1)
	err := env.submit(t, []*testutil.Account{attacker}, solana_vault.NewToggleLockInstruction(
		&solana_vault.ToggleLockInstructionAccounts{
			Authority: attacker.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.ToggleLockInstructionArgs{},
	))
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrUnauthorized))
	assert.False(t, env.getVault(t, vaultAddress).Locked)
}

func TestInvalidInstruction(t *testing.T) {
	env := setup(t)

	payer := env.newFundedAccount(t, 1)

	err := env.submit(t, []*testutil.Account{payer}, solana.NewInstruction(
		solana_vault.PROGRAM_ID,
		[]byte{1, 2, 3},
		solana.NewAccountMeta(payer.PublicKey, true),
	))
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorInvalidInstructionData)

	authority := env.newFundedAccount(t, 1)
	vaultAddress := env.initialize(t, authority)

	ix := solana_vault.NewDepositInstruction(
		&solana_vault.DepositInstructionAccounts{
			Depositor: payer.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.DepositInstructionArgs{Amount: 1},
	)
	ix.Accounts = ix.Accounts[:1]

	err = env.submit(t, []*testutil.Account{payer}, ix)
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorNotEnoughAccountKeys)
}

func TestConservation(t *testing.T) {
	env := setup(t)

	authorities := []*testutil.Account{
		env.newFundedAccount(t, 1_000),
		env.newFundedAccount(t, 1_000),
	}
	depositors := []*testutil.Account{
		env.newFundedAccount(t, 1_000),
		env.newFundedAccount(t, 1_000),
	}

	var vaults []ed25519.PublicKey
	for _, authority := range authorities {
		vaults = append(vaults, env.initialize(t, authority))
	}

	total := func() uint64 {
		var sum uint64
		for _, a := range append(authorities, depositors...) {
			sum += testutil.GetBalance(t, env.accounts, a.PublicKey)
		}
		for _, v := range vaults {
			sum += testutil.GetBalance(t, env.accounts, v)
		}
		return sum
	}
	require.EqualValues(t, 4_000, total())

	type operation func() error
	operations := []operation{
		func() error { return env.deposit(t, depositors[0], vaults[0], 300) },
		func() error { return env.deposit(t, depositors[1], vaults[0], 200) },
		func() error { return env.deposit(t, depositors[1], vaults[1], 900) },
		func() error { return env.deposit(t, depositors[1], vaults[1], 700) },
		func() error { return env.withdraw(t, authorities[0], vaults[0], 450) },
		func() error { return env.withdraw(t, authorities[1], vaults[0], 10) },
		func() error { return env.withdraw(t, authorities[1], vaults[1], 1_000) },
		func() error { return env.deposit(t, depositors[0], vaults[1], 5_000) },
		func() error { return env.withdraw(t, authorities[1], vaults[1], 200) },
		func() error { return env.deposit(t, authorities[1], vaults[0], 1_000) },
	}

	var failed int
	for _, op := range operations {
		if op() != nil {
			failed++
		}
		assert.EqualValues(t, 4_000, total())
	}
	assert.Equal(t, 4, failed)

	assert.EqualValues(t, 1_050, testutil.GetBalance(t, env.accounts, vaults[0]))
	assert.EqualValues(t, 500, testutil.GetBalance(t, env.accounts, vaults[1]))
}

func TestDeriveVaultAddress(t *testing.T) {
	a := testutil.NewRandomAccount(t)
	b := testutil.NewRandomAccount(t)

	first, firstBump, err := solana_vault.GetVaultAddress(a.PublicKey)
	require.NoError(t, err)
	second, secondBump, err := solana_vault.GetVaultAddress(a.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, firstBump, secondBump)

	other, _, err := solana_vault.GetVaultAddress(b.PublicKey)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	// Initializing always lands on the derived address
	env := setup(t)
	env.fund(t, a, 1)
	assert.Equal(t, first, env.initialize(t, a))
}

func TestVaultAddressCache(t *testing.T) {
	p := New(withManualTestOverrides(&testOverrides{addressCacheSize: 1}))

	a := testutil.NewRandomAccount(t)
	b := testutil.NewRandomAccount(t)

	for i := 0; i < 2; i++ {
		for _, authority := range []*testutil.Account{a, b} {
			expected, expectedBump, err := solana_vault.GetVaultAddress(authority.PublicKey)
			require.NoError(t, err)

			actual, actualBump, err := p.getVaultAddress(authority.PublicKey)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
			assert.Equal(t, expectedBump, actualBump)
			assert.Equal(t, 1, p.addresses.Len())
		}
	}

	cached, ok := p.addresses.Retrieve(string(b.PublicKey))
	require.True(t, ok)
	expected, _, err := solana_vault.GetVaultAddress(b.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, expected, cached.address)
}

func TestVaultAddressCache_Disabled(t *testing.T) {
	p := New(withManualTestOverrides(&testOverrides{addressCacheSize: 0}))
	assert.Equal(t, 0, p.addresses.Budget())

	authority := testutil.NewRandomAccount(t)
	expected, expectedBump, err := solana_vault.GetVaultAddress(authority.PublicKey)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		actual, actualBump, err := p.getVaultAddress(authority.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
		assert.Equal(t, expectedBump, actualBump)
		assert.Equal(t, 0, p.addresses.Len())
	}
}

func TestDeposit_IntoUnlockedVault(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 150)
	vaultAddress := env.initialize(t, authority)

	require.NoError(t, env.deposit(t, depositor, vaultAddress, 100))
	assert.EqualValues(t, 100, testutil.GetBalance(t, env.accounts, vaultAddress))
	assert.EqualValues(t, 50, testutil.GetBalance(t, env.accounts, depositor.PublicKey))
	assert.Len(t, env.publisher.eventsNamed(solana_vault.DepositEventName), 1)
}

func TestDeposit_IntoLockedVault(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 150)
	vaultAddress := env.initialize(t, authority)
	require.NoError(t, env.deposit(t, depositor, vaultAddress, 20))
	env.toggleLock(t, authority, vaultAddress)

	err := env.deposit(t, depositor, vaultAddress, 50)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrVaultLocked))
	assert.EqualValues(t, 20, testutil.GetBalance(t, env.accounts, vaultAddress))
	assert.EqualValues(t, 130, testutil.GetBalance(t, env.accounts, depositor.PublicKey))
}

func TestWithdraw_MoreThanBalance(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 100)
	vaultAddress := env.initialize(t, authority)
	require.NoError(t, env.deposit(t, depositor, vaultAddress, 100))

	err := env.withdraw(t, authority, vaultAddress, 150)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrInsufficientBalance))
	assert.EqualValues(t, 100, testutil.GetBalance(t, env.accounts, vaultAddress))
	assert.EqualValues(t, 0, testutil.GetBalance(t, env.accounts, authority.PublicKey))
}

func TestWithdraw_ByNonAuthority(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	depositor := env.newFundedAccount(t, 100)
	vaultAddress := env.initialize(t, authority)
	require.NoError(t, env.deposit(t, depositor, vaultAddress, 100))

	err := env.withdraw(t, depositor, vaultAddress, 100)
	testutil.AssertCustomError(t, err, 0, uint32(solana_vault.ErrUnauthorized))
	assert.EqualValues(t, 100, testutil.GetBalance(t, env.accounts, vaultAddress))
}

func TestToggleLock_Twice(t *testing.T) {
	env := setup(t)

	authority := env.newFundedAccount(t, 0)
	vaultAddress := env.initialize(t, authority)
	require.False(t, env.getVault(t, vaultAddress).Locked)

	env.toggleLock(t, authority, vaultAddress)
	assert.True(t, env.getVault(t, vaultAddress).Locked)

	env.toggleLock(t, authority, vaultAddress)
	assert.False(t, env.getVault(t, vaultAddress).Locked)
}

type testEnv struct {
	ctx       context.Context
	accounts  account.Store
	publisher *capturingPublisher
	runtime   *runtime.Runtime
}

func setup(t *testing.T) *testEnv {
	accounts := memory_account_store.New()
	publisher := &capturingPublisher{}

	env := &testEnv{
		ctx:       context.Background(),
		accounts:  accounts,
		publisher: publisher,
		runtime:   runtime.New(accounts, publisher, runtime.WithEnvConfigs()),
	}
	require.NoError(t, env.runtime.RegisterProgram(New(WithEnvConfigs())))
	return env
}

func (e *testEnv) newFundedAccount(t *testing.T, lamports uint64) *testutil.Account {
	a := testutil.NewRandomAccount(t)
	e.fund(t, a, lamports)
	return a
}

func (e *testEnv) fund(t *testing.T, a *testutil.Account, lamports uint64) {
	testutil.FundAccount(t, e.accounts, a.PublicKey, testutil.GetBalance(t, e.accounts, a.PublicKey)+lamports)
}

func (e *testEnv) initialize(t *testing.T, authority *testutil.Account) ed25519.PublicKey {
	vaultAddress, _, err := solana_vault.GetVaultAddress(authority.PublicKey)
	require.NoError(t, err)

	require.NoError(t, e.submit(t, []*testutil.Account{authority}, solana_vault.NewInitializeInstruction(
		&solana_vault.InitializeInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.InitializeInstructionArgs{},
	)))
	return vaultAddress
}

func (e *testEnv) deposit(t *testing.T, depositor *testutil.Account, vaultAddress ed25519.PublicKey, amount uint64) error {
	return e.submit(t, []*testutil.Account{depositor}, solana_vault.NewDepositInstruction(
		&solana_vault.DepositInstructionAccounts{
			Depositor: depositor.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.DepositInstructionArgs{Amount: amount},
	))
}

func (e *testEnv) withdraw(t *testing.T, authority *testutil.Account, vaultAddress ed25519.PublicKey, amount uint64) error {
	return e.submit(t, []*testutil.Account{authority}, solana_vault.NewWithdrawInstruction(
		&solana_vault.WithdrawInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.WithdrawInstructionArgs{Amount: amount},
	))
}

func (e *testEnv) toggleLock(t *testing.T, authority *testutil.Account, vaultAddress ed25519.PublicKey) {
	require.NoError(t, e.submit(t, []*testutil.Account{authority}, solana_vault.NewToggleLockInstruction(
		&solana_vault.ToggleLockInstructionAccounts{
			Authority: authority.PublicKey,
			Vault:     vaultAddress,
		},
		&solana_vault.ToggleLockInstructionArgs{},
	)))
}

func (e *testEnv) getVault(t *testing.T, vaultAddress ed25519.PublicKey) *solana_vault.VaultAccount {
	info, err := e.runtime.GetAccount(e.ctx, vaultAddress)
	require.NoError(t, err)

	var state solana_vault.VaultAccount
	require.NoError(t, state.Unmarshal(info.Data))
	return &state
}

func (e *testEnv) submit(t *testing.T, signers []*testutil.Account, instructions ...solana.Instruction) error {
	txn := solana.NewTransaction(signers[0].PublicKey, instructions...)

	var keys []ed25519.PrivateKey
	for _, signer := range signers {
		keys = append(keys, signer.PrivateKey)
	}
	require.NoError(t, txn.Sign(keys...))

	return e.runtime.ExecuteTransaction(e.ctx, &txn)
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []event.Emitted
}

func (p *capturingPublisher) Publish(_ context.Context, _ []byte, events ...event.Emitted) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, events...)
}

func (p *capturingPublisher) eventsNamed(name string) []event.Emitted {
	p.mu.Lock()
	defer p.mu.Unlock()

	var res []event.Emitted
	for _, emitted := range p.events {
		if emitted.Event.Name() == name {
			res = append(res, emitted)
		}
	}
	return res
}
