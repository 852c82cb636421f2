package vault

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-vault/pkg/cache"
	"github.com/code-payments/code-vault/pkg/metrics"
	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	solana_vault "github.com/code-payments/code-vault/pkg/solana/vault"
)

const (
	metricsStructName = "program.vault"
)

// Program executes vault instructions. Every vault is a program-derived
// account holding lamports on behalf of a single authority.
type Program struct {
	log  *logrus.Entry
	conf *conf

	// Authority to derived vault address
	addresses *cache.Cache[derivedAddress]
}

type derivedAddress struct {
	address ed25519.PublicKey
	bump    uint8
}

func New(configProvider ConfigProvider) *Program {
	conf := configProvider()

	return &Program{
		log:       logrus.StandardLogger().WithField("type", "program/vault"),
		conf:      conf,
		addresses: cache.New[derivedAddress]("vault_address", int(conf.addressCacheSize.Get(context.Background()))),
	}
}

func (p *Program) ProgramID() ed25519.PublicKey {
	return solana_vault.PROGRAM_ID
}

func (p *Program) Process(ctx *runtime.InvokeContext, data []byte) error {
	instructionType, err := solana_vault.GetInstructionType(data)
	if err != nil {
		return solana.InstructionErrorInvalidInstructionData
	}

	tracer := metrics.TraceMethodCall(ctx.Context(), metricsStructName, instructionType.String())
	defer tracer.End()

	switch instructionType {
	case solana_vault.InstructionTypeInitialize:
		err = p.processInitialize(ctx, data)
	case solana_vault.InstructionTypeDeposit:
		err = p.processDeposit(ctx, data)
	case solana_vault.InstructionTypeWithdraw:
		err = p.processWithdraw(ctx, data)
	case solana_vault.InstructionTypeToggleLock:
		err = p.processToggleLock(ctx, data)
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

// getVaultAddress derives the vault of an authority, memoizing the result
func (p *Program) getVaultAddress(authority ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	if cached, ok := p.addresses.Retrieve(string(authority)); ok {
		return cached.address, cached.bump, nil
	}

	address, bump, err := solana_vault.GetVaultAddress(authority)
	if err != nil {
		return nil, 0, err
	}

	// Concurrent derivations of the same authority race to insert an
	// identical value, so ErrKeyExists is expected
	err = p.addresses.Insert(string(authority), derivedAddress{address: address, bump: bump}, 1)
	if err != nil && err != cache.ErrKeyExists {
		p.log.WithError(err).WithField("authority", base58.Encode(authority)).Debug("vault address not cached")
	}

	return address, bump, nil
}
