package twitter

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var (
	likeTweetInstructionDiscriminator = []byte{
		248, 27, 137, 254, 228, 130, 141, 149,
	}
	dislikeTweetInstructionDiscriminator = []byte{
		40, 221, 179, 49, 162, 224, 64, 97,
	}
	removeReactionInstructionDiscriminator = []byte{
		104, 53, 215, 88, 121, 195, 74, 50,
	}
)

const (
	ReactionInstructionSize = discriminatorSize
)

type ReactionInstructionAccounts struct {
	Author   ed25519.PublicKey
	Reaction ed25519.PublicKey
	Tweet    ed25519.PublicKey
}

// NewReactInstruction returns a like_tweet or dislike_tweet instruction.
func NewReactInstruction(accounts *ReactionInstructionAccounts, reaction ReactionType) solana.Instruction {
	discriminator := likeTweetInstructionDiscriminator
	if reaction == ReactionTypeDislike {
		discriminator = dislikeTweetInstructionDiscriminator
	}

	var offset int
	data := make([]byte, ReactionInstructionSize)
	binary.PutDiscriminator(data, discriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Author, true),
		solana.NewAccountMeta(accounts.Reaction, false),
		solana.NewAccountMeta(accounts.Tweet, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func NewRemoveReactionInstruction(accounts *ReactionInstructionAccounts) solana.Instruction {
	var offset int
	data := make([]byte, ReactionInstructionSize)
	binary.PutDiscriminator(data, removeReactionInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Author, true),
		solana.NewAccountMeta(accounts.Reaction, false),
		solana.NewAccountMeta(accounts.Tweet, false),
	)
}

// ReactionTypeFromBinary returns the reaction added by a like_tweet or
// dislike_tweet instruction.
func ReactionTypeFromBinary(data []byte) (ReactionType, error) {
	if len(data) < ReactionInstructionSize {
		return 0, ErrInvalidInstructionData
	}

	switch {
	case bytes.Equal(data[:discriminatorSize], likeTweetInstructionDiscriminator):
		return ReactionTypeLike, nil
	case bytes.Equal(data[:discriminatorSize], dislikeTweetInstructionDiscriminator):
		return ReactionTypeDislike, nil
	}
	return 0, ErrInvalidInstructionData
}
