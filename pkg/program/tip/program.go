package tip

import (
	"bytes"
	"crypto/ed25519"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/system"
	solana_tip "github.com/code-payments/code-vault/pkg/solana/tip"
)

const (
	metricsStructName = "program.tip"
)

// Program moves lamports from a tipper to a creator, and keeps a permanent
// record of every tip.
type Program struct {
	log *logrus.Entry
}

func New() *Program {
	return &Program{
		log: logrus.StandardLogger().WithField("type", "program/tip"),
	}
}

func (p *Program) ProgramID() ed25519.PublicKey {
	return solana_tip.PROGRAM_ID
}

// Process handles the tip instruction, the only one the program supports.
//
// Account references
//  0. [WRITE, SIGNER] Tipper
//  1. [WRITE] Creator
//  2. [WRITE] Tip history
//  3. [] System program
func (p *Program) Process(ctx *runtime.InvokeContext, data []byte) error {
	tracer := metrics.TraceMethodCall(ctx.Context(), metricsStructName, "Process")
	defer tracer.End()

	err := p.processTip(ctx, data)
	if err != nil {
		tracer.OnError(err)
		ctx.Log().WithError(err).Debug("tip failed")
	}
	return err
}

func (p *Program) processTip(ctx *runtime.InvokeContext, data []byte) error {
	args, err := solana_tip.TipInstructionArgsFromBinary(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	tipper, err := ctx.Account(0)
	if err != nil {
		return err
	}
	creator, err := ctx.Account(1)
	if err != nil {
		return err
	}
	history, err := ctx.Account(2)
	if err != nil {
		return err
	}

	if args.Amount == 0 {
		return solana_tip.ErrInvalidAmount
	}
	if tipper.Lamports() < args.Amount {
		return solana_tip.ErrInsufficientBalance
	}
	if len(args.Message) > solana_tip.MaxMessageLength {
		return solana_tip.ErrMessageTooLong
	}

	address, bump, err := solana_tip.GetTipHistoryAddress(tipper.Key, args.Timestamp)
	if err != nil || !bytes.Equal(address, history.Key) {
		return solana.InstructionErrorInvalidSeeds
	}
	if !history.IsEmpty() {
		return solana_tip.ErrTipHistoryAlreadyExists
	}

	err = ctx.Invoke(system.Transfer(tipper.Key, creator.Key, args.Amount))
	if err != nil {
		return err
	}

	err = ctx.CreateProgramAccount(
		tipper,
		history,
		solana_tip.TipHistoryAccountSize,
		0,
		solana_tip.GetTipHistorySeeds(tipper.Key, args.Timestamp, bump),
	)
	if err != nil {
		return err
	}

	record := &solana_tip.TipHistoryAccount{
		Tipper:    tipper.Key,
		Amount:    args.Amount,
		Message:   args.Message,
		Timestamp: args.Timestamp,
	}
	copy(history.Data(), record.Marshal())

	ctx.Emit(&solana_tip.TipEvent{
		Tipper: tipper.Key,
		Amount: args.Amount,
	})
	return nil
}
