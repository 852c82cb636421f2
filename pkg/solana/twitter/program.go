package twitter

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58/base58"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("3G4P7JjAJBfcnGnGYdR5WUFsbyjrjL8kMFtPYQ87g549")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)

	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
)

const (
	discriminatorSize = binary.DiscriminatorSize

	// Maximum lengths, in bytes
	MaxTopicLength   = 32
	MaxContentLength = 500
	MaxCommentLength = 500
)

var (
	TweetSeed         = []byte("TWEET_SEED")
	TweetReactionSeed = []byte("TWEET_REACTION_SEED")
	CommentSeed       = []byte("COMMENT_SEED")
)

type InstructionType uint8

const (
	InstructionTypeUnknown InstructionType = iota
	InstructionTypeInitialize
	InstructionTypeLikeTweet
	InstructionTypeDislikeTweet
	InstructionTypeRemoveReaction
	InstructionTypeAddComment
	InstructionTypeRemoveComment
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitialize:
		return "initialize"
	case InstructionTypeLikeTweet:
		return "like_tweet"
	case InstructionTypeDislikeTweet:
		return "dislike_tweet"
	case InstructionTypeRemoveReaction:
		return "remove_reaction"
	case InstructionTypeAddComment:
		return "add_comment"
	case InstructionTypeRemoveComment:
		return "remove_comment"
	}
	return "unknown"
}

func GetInstructionType(data []byte) (InstructionType, error) {
	if len(data) < discriminatorSize {
		return InstructionTypeUnknown, ErrInvalidInstructionData
	}

	switch string(data[:discriminatorSize]) {
	case string(initializeInstructionDiscriminator):
		return InstructionTypeInitialize, nil
	case string(likeTweetInstructionDiscriminator):
		return InstructionTypeLikeTweet, nil
	case string(dislikeTweetInstructionDiscriminator):
		return InstructionTypeDislikeTweet, nil
	case string(removeReactionInstructionDiscriminator):
		return InstructionTypeRemoveReaction, nil
	case string(addCommentInstructionDiscriminator):
		return InstructionTypeAddComment, nil
	case string(removeCommentInstructionDiscriminator):
		return InstructionTypeRemoveComment, nil
	}

	return InstructionTypeUnknown, ErrInvalidInstructionData
}

// GetTweetAddress returns the address of the tweet an author posted under a
// topic. An author can post at most one tweet per topic.
func GetTweetAddress(topic string, author ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		GetTweetSeeds(topic, author)...,
	)
}

func GetTweetSeeds(topic string, author ed25519.PublicKey, bump ...uint8) [][]byte {
	seeds := [][]byte{[]byte(topic), TweetSeed, author}
	if len(bump) > 0 {
		seeds = append(seeds, []byte{bump[0]})
	}
	return seeds
}

// GetReactionAddress returns the address of an author's reaction to a tweet
func GetReactionAddress(author, tweet ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		GetReactionSeeds(author, tweet)...,
	)
}

func GetReactionSeeds(author, tweet ed25519.PublicKey, bump ...uint8) [][]byte {
	seeds := [][]byte{TweetReactionSeed, author, tweet}
	if len(bump) > 0 {
		seeds = append(seeds, []byte{bump[0]})
	}
	return seeds
}

// GetCommentAddress returns the address of a comment. The content is seeded
// through its sha256 hash, so an author can't post the same comment twice on
// a tweet.
func GetCommentAddress(author ed25519.PublicKey, content string, tweet ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		GetCommentSeeds(author, content, tweet)...,
	)
}

func GetCommentSeeds(author ed25519.PublicKey, content string, tweet ed25519.PublicKey, bump ...uint8) [][]byte {
	hash := sha256.Sum256([]byte(content))
	seeds := [][]byte{CommentSeed, author, hash[:], tweet}
	if len(bump) > 0 {
		seeds = append(seeds, []byte{bump[0]})
	}
	return seeds
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
