package runtime

import (
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-vault/pkg/data/account"
	"github.com/code-payments/code-vault/pkg/event"
	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/solana"
	striped "github.com/code-payments/code-vault/pkg/sync"
)

const (
	metricsStructName = "runtime.Runtime"
)

// Runtime executes transactions against accounts persisted in an
// account.Store. Transactions are atomic: either every instruction succeeds
// and all changes are committed in a single batch, or nothing is.
type Runtime struct {
	log       *logrus.Entry
	conf      *conf
	accounts  account.Store
	publisher event.Publisher
	locks     *striped.StripedLock

	programsMu sync.RWMutex
	programs   map[string]Program
}

func New(accounts account.Store, publisher event.Publisher, configProvider ConfigProvider) *Runtime {
	conf := configProvider()

	r := &Runtime{
		log:       logrus.StandardLogger().WithField("type", "runtime"),
		conf:      conf,
		accounts:  accounts,
		publisher: publisher,
		locks:     striped.NewStripedLock(uint(conf.lockStripes.Get(context.Background()))),
		programs:  make(map[string]Program),
	}

	system := systemProgram{}
	r.programs[string(system.ProgramID())] = system

	return r
}

// RegisterProgram makes a program available for execution
func (r *Runtime) RegisterProgram(program Program) error {
	r.programsMu.Lock()
	defer r.programsMu.Unlock()

	id := string(program.ProgramID())
	if existing, ok := r.programs[id]; ok {
		if _, isSystem := existing.(systemProgram); isSystem {
			return ErrSystemProgramReserved
		}
		return ErrProgramAlreadyExists
	}

	r.programs[id] = program
	return nil
}

func (r *Runtime) getProgram(id ed25519.PublicKey) (Program, bool) {
	r.programsMu.RLock()
	defer r.programsMu.RUnlock()

	program, ok := r.programs[string(id)]
	return program, ok
}

// GetAccount returns the committed state of an account. Addresses that were
// never saved are returned as empty system accounts.
func (r *Runtime) GetAccount(ctx context.Context, address ed25519.PublicKey) (*Account, error) {
	record, err := r.accounts.Get(ctx, base58.Encode(address))
	if errors.Is(err, account.ErrAccountNotFound) {
		return newEmptyAccountState(address).toAccount(), nil
	} else if err != nil {
		return nil, errors.Wrap(err, "error getting account")
	}

	state, err := accountStateFromRecord(address, record)
	if err != nil {
		return nil, err
	}
	return state.toAccount(), nil
}

// ExecuteRawTransaction decodes a wire transaction and executes it
func (r *Runtime) ExecuteRawTransaction(ctx context.Context, raw []byte) error {
	txn, err := solana.ParseTransaction(raw)
	if err != nil {
		return errors.Wrap(solana.TransactionErrorSanitizeFailure, err.Error())
	}
	return r.ExecuteTransaction(ctx, txn)
}

// ExecuteTransaction executes and commits a transaction.
//
// Instruction failures are returned as a *solana.InstructionError. Conflicting
// concurrent commits fail with account.ErrStaleAccountState, and are not
// retried.
func (r *Runtime) ExecuteTransaction(ctx context.Context, txn *solana.Transaction) (err error) {
	ctx, end := metrics.StartTransaction(ctx, metricsStructName+".ExecuteTransaction")
	defer end()

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ExecuteTransaction")
	defer tracer.End()

	start := time.Now()
	defer func() {
		tracer.OnError(err)
		recordTransactionExecutedEvent(ctx, txn, err, time.Since(start))
	}()

	if err := sanitize(txn); err != nil {
		return err
	}

	signature := base58.Encode(txn.Signature())
	log := r.log.WithFields(logrus.Fields{
		"method":    "ExecuteTransaction",
		"signature": signature,
	})
	tracer.AddAttribute("signature", signature)

	if r.conf.verifySignatures.Get(ctx) {
		if err := txn.VerifySignatures(); err != nil {
			return errors.Wrap(solana.TransactionErrorSignatureFailure, err.Error())
		}
	}

	var writable, readonly [][]byte
	for i, key := range txn.Message.Accounts {
		if txn.Message.IsWritable(i) {
			writable = append(writable, key)
		} else {
			readonly = append(readonly, key)
		}
	}

	unlock := r.locks.LockKeys(writable, readonly)
	defer unlock()

	tx, err := r.loadTransactionContext(ctx, txn, log)
	if err != nil {
		log.WithError(err).Warn("failure loading accounts")
		return err
	}

	for i, ix := range txn.Message.Instructions {
		if err := r.executeInstruction(tx, &txn.Message, ix); err != nil {
			log.WithError(err).WithField("instruction", i).Debug("instruction failed")
			return solana.NewInstructionError(i, err)
		}
	}

	var modified []*account.Record
	var states []*accountState
	for _, key := range txn.Message.Accounts {
		state := tx.accounts[string(key)]
		if state.isModified() {
			modified = append(modified, state.toRecord())
			states = append(states, state)
		}
	}

	if len(modified) > 0 {
		if err := r.accounts.SaveBatch(ctx, modified...); err != nil {
			log.WithError(err).Warn("failure committing transaction")
			return errors.Wrap(err, "error committing transaction")
		}

		for i, state := range states {
			state.loaded = modified[i]
		}
	}

	r.publisher.Publish(ctx, txn.Signature(), tx.events...)
	return nil
}

func (r *Runtime) loadTransactionContext(ctx context.Context, txn *solana.Transaction, log *logrus.Entry) (*transactionContext, error) {
	addresses := make([]string, len(txn.Message.Accounts))
	for i, key := range txn.Message.Accounts {
		addresses[i] = base58.Encode(key)
	}

	records, err := r.accounts.GetBatch(ctx, addresses...)
	if err != nil {
		return nil, errors.Wrap(err, "error loading accounts")
	}

	tx := &transactionContext{
		ctx:      ctx,
		runtime:  r,
		log:      log,
		accounts: make(map[string]*accountState, len(txn.Message.Accounts)),
	}

	for i, key := range txn.Message.Accounts {
		record, ok := records[addresses[i]]
		if !ok {
			tx.accounts[string(key)] = newEmptyAccountState(key)
			continue
		}

		state, err := accountStateFromRecord(key, record)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account %s", addresses[i])
		}
		tx.accounts[string(key)] = state
	}

	return tx, nil
}

func (r *Runtime) executeInstruction(tx *transactionContext, m *solana.Message, ix solana.CompiledInstruction) error {
	program, ok := r.getProgram(m.Accounts[ix.ProgramIndex])
	if !ok {
		return solana.InstructionErrorUnsupportedProgramID
	}

	accounts := make([]*AccountInfo, len(ix.Accounts))
	for i, index := range ix.Accounts {
		key := m.Accounts[index]
		accounts[i] = &AccountInfo{
			Key:        key,
			IsSigner:   m.IsSigner(int(index)),
			IsWritable: m.IsWritable(int(index)),
			state:      tx.accounts[string(key)],
		}
	}

	return tx.process(program, accounts, ix.Data, 1)
}

// sanitize validates the structure of a transaction before anything is loaded
func sanitize(txn *solana.Transaction) error {
	m := &txn.Message

	if len(m.Instructions) == 0 {
		return ErrNoInstructions
	}

	if len(txn.Signatures) == 0 || len(txn.Signatures) != int(m.Header.NumSignatures) {
		return errors.Wrap(solana.TransactionErrorSanitizeFailure, "signature count mismatch")
	}
	if int(m.Header.NumSignatures)+int(m.Header.NumReadOnly) > len(m.Accounts) {
		return errors.Wrap(solana.TransactionErrorSanitizeFailure, "invalid header")
	}

	seen := make(map[string]struct{}, len(m.Accounts))
	for _, key := range m.Accounts {
		if len(key) != ed25519.PublicKeySize {
			return errors.Wrap(solana.TransactionErrorSanitizeFailure, "invalid account key")
		}
		if _, ok := seen[string(key)]; ok {
			return solana.TransactionErrorAccountLoadedTwice
		}
		seen[string(key)] = struct{}{}
	}

	for _, ix := range m.Instructions {
		if int(ix.ProgramIndex) >= len(m.Accounts) {
			return errors.Wrap(solana.TransactionErrorSanitizeFailure, "invalid program index")
		}
		for _, index := range ix.Accounts {
			if int(index) >= len(m.Accounts) {
				return errors.Wrap(solana.TransactionErrorSanitizeFailure, "invalid account index")
			}
		}
	}

	return nil
}
