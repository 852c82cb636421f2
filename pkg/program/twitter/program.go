package twitter

import (
	"crypto/ed25519"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_twitter "github.com/code-payments/code-vault/pkg/solana/twitter"
)

const (
	metricsStructName = "program.twitter"
)

// Program is a micro-blogging ledger. Tweets, reactions and comments are
// program-derived accounts, so each is unique per author and seed.
type Program struct {
	log *logrus.Entry
}

func New() *Program {
	return &Program{
		log: logrus.StandardLogger().WithField("type", "program/twitter"),
	}
}

func (p *Program) ProgramID() ed25519.PublicKey {
	return solana_twitter.PROGRAM_ID
}

func (p *Program) Process(ctx *runtime.InvokeContext, data []byte) error {
	instructionType, err := solana_twitter.GetInstructionType(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	tracer := metrics.TraceMethodCall(ctx.Context(), metricsStructName, instructionType.String())
	defer tracer.End()

	switch instructionType {
	case solana_twitter.InstructionTypeInitialize:
		err = p.processInitializeTweet(ctx, data)
	case solana_twitter.InstructionTypeLikeTweet, solana_twitter.InstructionTypeDislikeTweet:
		err = p.processAddReaction(ctx, data)
	case solana_twitter.InstructionTypeRemoveReaction:
		err = p.processRemoveReaction(ctx)
	case solana_twitter.InstructionTypeAddComment:
		err = p.processAddComment(ctx, data)
	case solana_twitter.InstructionTypeRemoveComment:
		err = p.processRemoveComment(ctx)
	default:
		err = solana.InstructionErrorInvalidInstructionData
	}

	if err != nil {
		tracer.OnError(err)
		ctx.Log().WithError(err).WithField("instruction", instructionType.String()).Debug("instruction failed")
	}
	recordInstructionEvent(ctx.Context(), instructionType, err)
	return err
}
