package twitter

import (
	"crypto/ed25519"
	"math"

	"github.com/code-payments/code-vault/pkg/runtime"
	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/system"
	solana_twitter "github.com/code-payments/code-vault/pkg/solana/twitter"
)

type unmarshaler interface {
	Unmarshal(data []byte) error
}

// load decodes a program owned account into state
func load(info *runtime.AccountInfo, state unmarshaler) error {
	if !info.IsOwnedBy(solana_twitter.PROGRAM_ID) {
		if info.IsEmpty() {
			return solana.InstructionErrorUninitializedAccount
		}
		return solana.InstructionErrorIncorrectProgramID
	}

	if err := state.Unmarshal(info.Data()); err != nil {
		return solana.InstructionErrorInvalidAccountData
	}
	return nil
}

func loadTweet(info *runtime.AccountInfo) (*solana_twitter.TweetAccount, error) {
	var tweet solana_twitter.TweetAccount
	if err := load(info, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func saveTweet(info *runtime.AccountInfo, tweet *solana_twitter.TweetAccount) {
	copy(info.Data(), tweet.Marshal())
}

// closeAccount drains a program owned account into destination and hands it
// back to the system program, so the address can be created again.
func closeAccount(info, destination *runtime.AccountInfo) error {
	if destination.Lamports() > math.MaxUint64-info.Lamports() {
		return solana.InstructionErrorArithmeticOverflow
	}

	destination.SetLamports(destination.Lamports() + info.Lamports())
	info.SetLamports(0)
	info.SetData(nil)
	info.SetOwner(append(ed25519.PublicKey{}, system.ProgramKey[:]...))
	return nil
}

func checkSigner(info *runtime.AccountInfo) error {
	if !info.IsSigner {
		return solana.InstructionErrorMissingRequiredSignature
	}
	return nil
}
