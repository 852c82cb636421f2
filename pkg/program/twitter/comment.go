package twitter

import (
	"bytes"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_twitter "github.com/code-payments/code-vault/pkg/solana/twitter"
)

// Account references
//  0. [WRITE, SIGNER] Author
//  1. [WRITE] Comment
//  2. [WRITE] Tweet
//  3. [] System program
func (p *Program) processAddComment(ctx *runtime.InvokeContext, data []byte) error {
	args, err := solana_twitter.AddCommentInstructionArgsFromBinary(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	author, err := ctx.Account(0)
	if err != nil {
		return err
	}
	comment, err := ctx.Account(1)
	if err != nil {
		return err
	}
	tweet, err := ctx.Account(2)
	if err != nil {
		return err
	}

	if err := checkSigner(author); err != nil {
		return err
	}

	if len(args.Content) > solana_twitter.MaxCommentLength {
		return solana_twitter.ErrCommentTooLong
	}

	if _, err := loadTweet(tweet); err != nil {
		return err
	}

	address, bump, err := solana_twitter.GetCommentAddress(author.Key, args.Content, tweet.Key)
	if err != nil || !bytes.Equal(address, comment.Key) {
		return solana.InstructionErrorInvalidSeeds
	}
	if !comment.IsEmpty() {
		return solana.InstructionErrorAccountAlreadyInitialized
	}

	err = ctx.CreateProgramAccount(
		author,
		comment,
		solana_twitter.CommentAccountSize,
		0,
		solana_twitter.GetCommentSeeds(author.Key, args.Content, tweet.Key, bump),
	)
	if err != nil {
		return err
	}

	record := &solana_twitter.CommentAccount{
		Author:      author.Key,
		ParentTweet: tweet.Key,
		Content:     args.Content,
		Bump:        bump,
	}
	copy(comment.Data(), record.Marshal())
	return nil
}

// Account references
//  0. [WRITE, SIGNER] Author
//  1. [WRITE] Comment
func (p *Program) processRemoveComment(ctx *runtime.InvokeContext) error {
	author, err := ctx.Account(0)
	if err != nil {
		return err
	}
	comment, err := ctx.Account(1)
	if err != nil {
		return err
	}

	if err := checkSigner(author); err != nil {
		return err
	}

	var record solana_twitter.CommentAccount
	if err := load(comment, &record); err != nil {
		return err
	}

	address, err := solana.CreateProgramAddress(
		solana_twitter.PROGRAM_ID,
		solana_twitter.GetCommentSeeds(author.Key, record.Content, record.ParentTweet, record.Bump)...,
	)
	if err != nil || !bytes.Equal(address, comment.Key) {
		return solana.InstructionErrorInvalidSeeds
	}
	if !bytes.Equal(record.Author, author.Key) {
		return solana.InstructionErrorInvalidAccountData
	}

	return closeAccount(comment, author)
}
