package tip

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var tipInstructionDiscriminator = []byte{
	77, 164, 35, 21, 36, 121, 213, 51,
}

type TipInstructionArgs struct {
	Amount    uint64
	Message   string
	Timestamp int64
}

type TipInstructionAccounts struct {
	Tipper     ed25519.PublicKey
	Creator    ed25519.PublicKey
	TipHistory ed25519.PublicKey
}

func NewTipInstruction(
	accounts *TipInstructionAccounts,
	args *TipInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, discriminatorSize+8+4+len(args.Message)+8)
	binary.PutDiscriminator(data, tipInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)
	binary.PutString(data[offset:], args.Message, &offset)
	binary.PutInt64(data[offset:], args.Timestamp, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Tipper, true),
		solana.NewAccountMeta(accounts.Creator, false),
		solana.NewAccountMeta(accounts.TipHistory, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func TipInstructionArgsFromBinary(data []byte) (*TipInstructionArgs, error) {
	if len(data) < discriminatorSize+8+4+8 {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], tipInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args TipInstructionArgs
	offset := discriminatorSize
	binary.GetUint64(data[offset:], &args.Amount, &offset)
	if err := binary.GetString(data[offset:], &args.Message, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}
	if len(data) < offset+8 {
		return nil, ErrInvalidInstructionData
	}
	binary.GetInt64(data[offset:], &args.Timestamp, &offset)

	return &args, nil
}
