package twitter

import (
	"bytes"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_twitter "github.com/code-payments/code-vault/pkg/solana/twitter"
)

// Account references
//  0. [WRITE, SIGNER] Author
//  1. [WRITE] Tweet
//  2. [] System program
func (p *Program) processInitializeTweet(ctx *runtime.InvokeContext, data []byte) error {
	args, err := solana_twitter.InitializeInstructionArgsFromBinary(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	author, err := ctx.Account(0)
	if err != nil {
		return err
	}
	tweet, err := ctx.Account(1)
	if err != nil {
		return err
	}

	if err := checkSigner(author); err != nil {
		return err
	}

	if len(args.Topic) > solana_twitter.MaxTopicLength {
		return solana_twitter.ErrTopicTooLong
	}
	if len(args.Content) > solana_twitter.MaxContentLength {
		return solana_twitter.ErrContentTooLong
	}

	address, bump, err := solana_twitter.GetTweetAddress(args.Topic, author.Key)
	if err != nil || !bytes.Equal(address, tweet.Key) {
		return solana.InstructionErrorInvalidSeeds
	}
	if !tweet.IsEmpty() {
		return solana.InstructionErrorAccountAlreadyInitialized
	}

	err = ctx.CreateProgramAccount(
		author,
		tweet,
		solana_twitter.TweetAccountSize,
		0,
		solana_twitter.GetTweetSeeds(args.Topic, author.Key, bump),
	)
	if err != nil {
		return err
	}

	saveTweet(tweet, &solana_twitter.TweetAccount{
		Author:  author.Key,
		Topic:   args.Topic,
		Content: args.Content,
		Bump:    bump,
	})
	return nil
}
