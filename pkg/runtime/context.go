package runtime

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-vault/pkg/event"
	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/system"
)

// maxInvokeStackHeight bounds the program call stack, including the top level
// instruction.
const maxInvokeStackHeight = 5

// transactionContext is the state shared by every invocation within a single
// transaction.
type transactionContext struct {
	ctx     context.Context
	runtime *Runtime
	log     *logrus.Entry

	accounts map[string]*accountState
	events   []event.Emitted

	// Set once any cross program invocation fails, which aborts the
	// transaction regardless of how the caller handles the error
	invokeErr error
}

// InvokeContext is the environment of a single program invocation
type InvokeContext struct {
	tx *transactionContext

	program  Program
	accounts []*AccountInfo
	height   int

	pre           []*preAccount
	startLamports lamportTotal
}

func (tx *transactionContext) process(program Program, accounts []*AccountInfo, data []byte, height int) error {
	pre := snapshotAccounts(accounts)

	invokeCtx := &InvokeContext{
		tx:            tx,
		program:       program,
		accounts:      accounts,
		height:        height,
		pre:           pre,
		startLamports: sumPreLamports(pre),
	}

	if err := program.Process(invokeCtx, data); err != nil {
		return err
	}
	if tx.invokeErr != nil {
		return tx.invokeErr
	}

	return invokeCtx.verify()
}

// verify checks every account change made since the last snapshot, and that
// the invocation preserved the total lamports it was given.
func (c *InvokeContext) verify() error {
	programID := c.program.ProgramID()

	for _, pre := range c.pre {
		if err := pre.verify(programID); err != nil {
			return err
		}
	}

	if sumPostLamports(c.pre) != c.startLamports {
		return solana.InstructionErrorUnbalancedInstruction
	}
	return nil
}

func (c *InvokeContext) updateSnapshots() {
	for _, pre := range c.pre {
		pre.update()
	}
}

// Context returns the context of the executing transaction
func (c *InvokeContext) Context() context.Context {
	return c.tx.ctx
}

func (c *InvokeContext) ProgramID() ed25519.PublicKey {
	return c.program.ProgramID()
}

func (c *InvokeContext) Accounts() []*AccountInfo {
	return c.accounts
}

// Account returns the account at index, failing when the instruction didn't
// provide enough accounts.
func (c *InvokeContext) Account(index int) (*AccountInfo, error) {
	if index < 0 || index >= len(c.accounts) {
		return nil, solana.InstructionErrorNotEnoughAccountKeys
	}
	return c.accounts[index], nil
}

// Log returns a logger scoped to the executing program
func (c *InvokeContext) Log() *logrus.Entry {
	return c.tx.log.WithField("program", base58.Encode(c.ProgramID()))
}

// Emit records an event. Events are only delivered if the transaction commits.
func (c *InvokeContext) Emit(e event.ProgramEvent) {
	c.tx.events = append(c.tx.events, event.Emitted{
		Program: c.ProgramID(),
		Event:   e,
	})
}

// Invoke executes another program with a subset of the caller's accounts. The
// caller's signer and writable privileges are inherited, never escalated, with
// the exception of addresses derived from the caller's program ID using one of
// signerSeeds, which may sign.
func (c *InvokeContext) Invoke(ix solana.Instruction, signerSeeds ...[][]byte) error {
	err := c.invoke(ix, signerSeeds...)
	if err != nil && c.tx.invokeErr == nil {
		c.tx.invokeErr = err
	}
	return err
}

func (c *InvokeContext) invoke(ix solana.Instruction, signerSeeds ...[][]byte) error {
	callerID := c.ProgramID()

	// The callee observes the caller's changes, so they must be valid first
	for _, pre := range c.pre {
		if err := pre.verify(callerID); err != nil {
			return err
		}
	}

	type privileges struct {
		state      *accountState
		isSigner   bool
		isWritable bool
	}
	callerPrivileges := make(map[string]*privileges)
	for _, info := range c.accounts {
		p, ok := callerPrivileges[string(info.Key)]
		if !ok {
			p = &privileges{state: info.state}
			callerPrivileges[string(info.Key)] = p
		}
		p.isSigner = p.isSigner || info.IsSigner
		p.isWritable = p.isWritable || info.IsWritable
	}

	var pdaSigners []ed25519.PublicKey
	for _, seeds := range signerSeeds {
		pda, err := solana.CreateProgramAddress(callerID, seeds...)
		if err != nil {
			return solana.InstructionErrorInvalidSeeds
		}
		pdaSigners = append(pdaSigners, pda)
	}

	calleeAccounts := make([]*AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		p, ok := callerPrivileges[string(meta.PublicKey)]
		if !ok {
			return solana.InstructionErrorMissingAccount
		}

		if meta.IsWritable && !p.isWritable {
			return solana.InstructionErrorPrivilegeEscalation
		}

		if meta.IsSigner && !p.isSigner && !containsKey(pdaSigners, meta.PublicKey) {
			return solana.InstructionErrorPrivilegeEscalation
		}

		calleeAccounts[i] = &AccountInfo{
			Key:        p.state.key,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			state:      p.state,
		}
	}

	callee, ok := c.tx.runtime.getProgram(ix.Program)
	if !ok {
		return solana.InstructionErrorUnsupportedProgramID
	}

	if c.height+1 > maxInvokeStackHeight {
		return solana.InstructionErrorCallDepth
	}

	c.updateSnapshots()

	if err := c.tx.process(callee, calleeAccounts, ix.Data, c.height+1); err != nil {
		return err
	}

	c.updateSnapshots()
	return nil
}

// CreateProgramAccount creates an account at address owned by the executing
// program, funded by payer. The address must derive from the executing
// program with seeds, and must be unused.
func (c *InvokeContext) CreateProgramAccount(payer, address *AccountInfo, space, lamports uint64, seeds [][]byte) error {
	expected, err := solana.CreateProgramAddress(c.ProgramID(), seeds...)
	if err != nil {
		return solana.InstructionErrorInvalidSeeds
	}
	if !bytes.Equal(expected, address.Key) {
		return errors.Wrap(solana.InstructionErrorInvalidSeeds, "address does not derive from seeds")
	}

	return c.Invoke(
		system.CreateAccount(payer.Key, address.Key, c.ProgramID(), lamports, space),
		seeds,
	)
}

func containsKey(keys []ed25519.PublicKey, key ed25519.PublicKey) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}
