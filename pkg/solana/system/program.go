package system

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/code-vault/pkg/solana"
)

// ProgramKey is the system program address, 11111111111111111111111111111111.
var ProgramKey [32]byte

// Command is the u32 instruction selector of the system program.
type Command uint32

const (
	CommandCreateAccount Command = iota
	CommandAssign
	CommandTransfer
)

const (
	createAccountDataSize = 4 + 2*8 + ed25519.PublicKeySize
	transferDataSize      = 4 + 8
)

// Errors returned by the system program, encoded as custom errors like the
// reference implementation.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L18
const (
	ErrAccountAlreadyInUse solana.CustomError = iota
	ErrResultWithNegativeLamports
	ErrInvalidProgramID
	ErrInvalidAccountDataLength
)

// MaxPermittedDataLength is the largest account the system program will allocate.
const MaxPermittedDataLength = 10 * 1024 * 1024

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	data := make([]byte, createAccountDataSize)
	binary.LittleEndian.PutUint32(data, uint32(CommandCreateAccount))
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[4+8:], size)
	copy(data[4+2*8:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L92-L96
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	data := make([]byte, transferDataSize)
	binary.LittleEndian.PutUint32(data, uint32(CommandTransfer))
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

type CreateAccountArgs struct {
	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

type TransferArgs struct {
	Lamports uint64
}

// GetCommand returns the selector of a raw system instruction.
func GetCommand(data []byte) (Command, error) {
	if len(data) < 4 {
		return 0, errors.Errorf("invalid instruction data size: %d", len(data))
	}
	return Command(binary.LittleEndian.Uint32(data)), nil
}

func ParseCreateAccountArgs(data []byte) (*CreateAccountArgs, error) {
	if len(data) != createAccountDataSize {
		return nil, errors.Errorf("invalid instruction data size: %d", len(data))
	}
	if cmd, _ := GetCommand(data); cmd != CommandCreateAccount {
		return nil, solana.ErrIncorrectInstruction
	}

	args := &CreateAccountArgs{
		Lamports: binary.LittleEndian.Uint64(data[4:]),
		Size:     binary.LittleEndian.Uint64(data[4+8:]),
		Owner:    make(ed25519.PublicKey, ed25519.PublicKeySize),
	}
	copy(args.Owner, data[4+2*8:])
	return args, nil
}

func ParseTransferArgs(data []byte) (*TransferArgs, error) {
	if len(data) != transferDataSize {
		return nil, errors.Errorf("invalid instruction data size: %d", len(data))
	}
	if cmd, _ := GetCommand(data); cmd != CommandTransfer {
		return nil, solana.ErrIncorrectInstruction
	}

	return &TransferArgs{
		Lamports: binary.LittleEndian.Uint64(data[4:]),
	}, nil
}

type DecompiledCreateAccount struct {
	Funder  ed25519.PublicKey
	Address ed25519.PublicKey

	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

func DecompileCreateAccount(m solana.Message, index int) (*DecompiledCreateAccount, error) {
	i, err := getCompiledInstruction(m, index, 2)
	if err != nil {
		return nil, err
	}

	args, err := ParseCreateAccountArgs(i.Data)
	if err != nil {
		return nil, err
	}

	return &DecompiledCreateAccount{
		Funder:   m.Accounts[i.Accounts[0]],
		Address:  m.Accounts[i.Accounts[1]],
		Lamports: args.Lamports,
		Size:     args.Size,
		Owner:    args.Owner,
	}, nil
}

type DecompiledTransfer struct {
	From     ed25519.PublicKey
	To       ed25519.PublicKey
	Lamports uint64
}

func DecompileTransfer(m solana.Message, index int) (*DecompiledTransfer, error) {
	i, err := getCompiledInstruction(m, index, 2)
	if err != nil {
		return nil, err
	}

	args, err := ParseTransferArgs(i.Data)
	if err != nil {
		return nil, err
	}

	return &DecompiledTransfer{
		From:     m.Accounts[i.Accounts[0]],
		To:       m.Accounts[i.Accounts[1]],
		Lamports: args.Lamports,
	}, nil
}

func getCompiledInstruction(m solana.Message, index, numAccounts int) (*solana.CompiledInstruction, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey[:]) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Accounts) != numAccounts {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	return &i, nil
}
