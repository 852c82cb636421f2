package twitter

import (
	"bytes"
	"math"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_twitter "github.com/code-payments/code-vault/pkg/solana/twitter"
)

// Account references
//  0. [WRITE, SIGNER] Author
//  1. [WRITE] Reaction
//  2. [WRITE] Tweet
//  3. [] System program
func (p *Program) processAddReaction(ctx *runtime.InvokeContext, data []byte) error {
	reactionType, err := solana_twitter.ReactionTypeFromBinary(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	author, err := ctx.Account(0)
	if err != nil {
		return err
	}
	reaction, err := ctx.Account(1)
	if err != nil {
		return err
	}
	tweetInfo, err := ctx.Account(2)
	if err != nil {
		return err
	}

	if err := checkSigner(author); err != nil {
		return err
	}

	tweet, err := loadTweet(tweetInfo)
	if err != nil {
		return err
	}

	address, bump, err := solana_twitter.GetReactionAddress(author.Key, tweetInfo.Key)
	if err != nil || !bytes.Equal(address, reaction.Key) {
		return solana.InstructionErrorInvalidSeeds
	}
	if !reaction.IsEmpty() {
		return solana.InstructionErrorAccountAlreadyInitialized
	}

	switch reactionType {
	case solana_twitter.ReactionTypeLike:
		if tweet.Likes == math.MaxUint64 {
			return solana_twitter.ErrMaxLikesReached
		}
		tweet.Likes++
	case solana_twitter.ReactionTypeDislike:
		if tweet.Dislikes == math.MaxUint64 {
			return solana_twitter.ErrMaxDislikesReached
		}
		tweet.Dislikes++
	}

	err = ctx.CreateProgramAccount(
		author,
		reaction,
		solana_twitter.ReactionAccountSize,
		0,
		solana_twitter.GetReactionSeeds(author.Key, tweetInfo.Key, bump),
	)
	if err != nil {
		return err
	}

	record := &solana_twitter.ReactionAccount{
		Author:      author.Key,
		ParentTweet: tweetInfo.Key,
		Reaction:    reactionType,
		Bump:        bump,
	}
	copy(reaction.Data(), record.Marshal())

	saveTweet(tweetInfo, tweet)
	return nil
}

// Account references
//  0. [WRITE, SIGNER] Author
//  1. [WRITE] Reaction
//  2. [WRITE] Tweet
func (p *Program) processRemoveReaction(ctx *runtime.InvokeContext) error {
	author, err := ctx.Account(0)
	if err != nil {
		return err
	}
	reaction, err := ctx.Account(1)
	if err != nil {
		return err
	}
	tweetInfo, err := ctx.Account(2)
	if err != nil {
		return err
	}

	if err := checkSigner(author); err != nil {
		return err
	}

	var record solana_twitter.ReactionAccount
	if err := load(reaction, &record); err != nil {
		return err
	}

	address, err := solana.CreateProgramAddress(
		solana_twitter.PROGRAM_ID,
		solana_twitter.GetReactionSeeds(author.Key, tweetInfo.Key, record.Bump)...,
	)
	if err != nil || !bytes.Equal(address, reaction.Key) {
		return solana.InstructionErrorInvalidSeeds
	}
	if !bytes.Equal(record.Author, author.Key) {
		return solana.InstructionErrorInvalidAccountData
	}

	tweet, err := loadTweet(tweetInfo)
	if err != nil {
		return err
	}

	switch record.Reaction {
	case solana_twitter.ReactionTypeLike:
		if tweet.Likes == 0 {
			return solana_twitter.ErrMinLikesReached
		}
		tweet.Likes--
	case solana_twitter.ReactionTypeDislike:
		if tweet.Dislikes == 0 {
			return solana_twitter.ErrMinDislikesReached
		}
		tweet.Dislikes--
	}

	saveTweet(tweetInfo, tweet)
	return closeAccount(reaction, author)
}
