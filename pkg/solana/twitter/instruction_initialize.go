package twitter

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var initializeInstructionDiscriminator = []byte{
	175, 175, 109, 31, 13, 152, 155, 237,
}

type InitializeInstructionArgs struct {
	Topic   string
	Content string
}

type InitializeInstructionAccounts struct {
	Author ed25519.PublicKey
	Tweet  ed25519.PublicKey
}

func NewInitializeInstruction(
	accounts *InitializeInstructionAccounts,
	args *InitializeInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, discriminatorSize+4+len(args.Topic)+4+len(args.Content))
	binary.PutDiscriminator(data, initializeInstructionDiscriminator, &offset)
	binary.PutString(data[offset:], args.Topic, &offset)
	binary.PutString(data[offset:], args.Content, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Author, true),
		solana.NewAccountMeta(accounts.Tweet, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func InitializeInstructionArgsFromBinary(data []byte) (*InitializeInstructionArgs, error) {
	if len(data) < discriminatorSize+4+4 {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], initializeInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args InitializeInstructionArgs
	offset := discriminatorSize
	if err := binary.GetString(data[offset:], &args.Topic, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < offset+4 {
		return nil, ErrInvalidInstructionData
	}
	if err := binary.GetString(data[offset:], &args.Content, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}

	return &args, nil
}
