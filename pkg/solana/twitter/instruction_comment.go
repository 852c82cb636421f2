package twitter

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var (
	addCommentInstructionDiscriminator = []byte{
		59, 175, 193, 236, 134, 214, 75, 141,
	}
	removeCommentInstructionDiscriminator = []byte{
		163, 33, 247, 159, 142, 140, 137, 109,
	}
)

type AddCommentInstructionArgs struct {
	Content string
}

type AddCommentInstructionAccounts struct {
	Author  ed25519.PublicKey
	Comment ed25519.PublicKey
	Tweet   ed25519.PublicKey
}

func NewAddCommentInstruction(
	accounts *AddCommentInstructionAccounts,
	args *AddCommentInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, discriminatorSize+4+len(args.Content))
	binary.PutDiscriminator(data, addCommentInstructionDiscriminator, &offset)
	binary.PutString(data[offset:], args.Content, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Author, true),
		solana.NewAccountMeta(accounts.Comment, false),
		solana.NewAccountMeta(accounts.Tweet, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func AddCommentInstructionArgsFromBinary(data []byte) (*AddCommentInstructionArgs, error) {
	if len(data) < discriminatorSize+4 {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], addCommentInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args AddCommentInstructionArgs
	offset := discriminatorSize
	if err := binary.GetString(data[offset:], &args.Content, &offset); err != nil {
		return nil, ErrInvalidInstructionData
	}

	return &args, nil
}

type RemoveCommentInstructionAccounts struct {
	Author  ed25519.PublicKey
	Comment ed25519.PublicKey
}

func NewRemoveCommentInstruction(accounts *RemoveCommentInstructionAccounts) solana.Instruction {
	var offset int
	data := make([]byte, discriminatorSize)
	binary.PutDiscriminator(data, removeCommentInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Author, true),
		solana.NewAccountMeta(accounts.Comment, false),
	)
}
