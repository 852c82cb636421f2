package tip

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-vault/pkg/solana"
	"github.com/code-payments/code-vault/pkg/solana/binary"
)

func TestGetTipHistoryAddress(t *testing.T) {
	tipper := mustBase58Decode("BuAprBZugjXG6QRbRQN8QKF8EzbW5SigkDuyR9KtqN5z")

	address, bump, err := GetTipHistoryAddress(tipper, 1700000000)
	require.NoError(t, err)
	assert.Equal(t, "27YtStWDkwzWNqFatRmSpkVKDodCJazNLfbfKfBhkfTu", base58.Encode(address))
	assert.EqualValues(t, 253, bump)

	signed, err := solana.CreateProgramAddress(PROGRAM_ID, GetTipHistorySeeds(tipper, 1700000000, bump)...)
	require.NoError(t, err)
	assert.Equal(t, address, signed)

	other, _, err := GetTipHistoryAddress(tipper, 1700000001)
	require.NoError(t, err)
	assert.NotEqual(t, address, other)

	assert.Equal(t, []byte{0, 0, 0, 0, 0x65, 0x53, 0xf1, 0}, timestampSeed(1700000000))
}

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, binary.Discriminator("global", "tip"), tipInstructionDiscriminator)
	assert.Equal(t, binary.Discriminator("account", "TipHistory"), tipHistoryAccountDiscriminator)
	assert.Equal(t, binary.Discriminator("event", TipEventName), tipEventDiscriminator)
}

func TestTipInstruction(t *testing.T) {
	tipper, creator, history := generateKey(t), generateKey(t), generateKey(t)

	ixn := NewTipInstruction(
		&TipInstructionAccounts{Tipper: tipper, Creator: creator, TipHistory: history},
		&TipInstructionArgs{Amount: 10, Message: "thanks!", Timestamp: 1700000000},
	)
	assert.Equal(t, PROGRAM_ID, ixn.Program)
	require.Len(t, ixn.Accounts, 4)
	assert.True(t, ixn.Accounts[0].IsSigner)
	assert.False(t, ixn.Accounts[1].IsSigner)
	assert.True(t, ixn.Accounts[2].IsWritable)
	assert.Equal(t, SYSTEM_PROGRAM_ID, ixn.Accounts[3].PublicKey)

	args, err := TipInstructionArgsFromBinary(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 10, args.Amount)
	assert.Equal(t, "thanks!", args.Message)
	assert.EqualValues(t, 1700000000, args.Timestamp)

	_, err = TipInstructionArgsFromBinary(ixn.Data[:len(ixn.Data)-1])
	assert.Equal(t, ErrInvalidInstructionData, err)

	_, err = TipInstructionArgsFromBinary(make([]byte, len(ixn.Data)))
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestTipHistoryAccount(t *testing.T) {
	expected := &TipHistoryAccount{
		Tipper:    generateKey(t),
		Amount:    12345,
		Message:   strings.Repeat("a", MaxMessageLength),
		Timestamp: -5,
	}

	data := expected.Marshal()
	require.Len(t, data, TipHistoryAccountSize)

	var actual TipHistoryAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, expected, &actual)

	short := &TipHistoryAccount{Tipper: generateKey(t), Amount: 1, Message: "hi", Timestamp: 3}
	require.NoError(t, actual.Unmarshal(short.Marshal()))
	assert.Equal(t, short, &actual)

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(make([]byte, TipHistoryAccountSize)))
}

func TestTipEvent(t *testing.T) {
	expected := &TipEvent{Tipper: generateKey(t), Amount: 99}

	var actual TipEvent
	require.NoError(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, expected, &actual)
	assert.Equal(t, TipEventName, actual.Name())
}

func TestErrors(t *testing.T) {
	assert.EqualValues(t, 0x1770, ErrInvalidAmount)
	assert.EqualValues(t, 0x1771, ErrInsufficientBalance)
	assert.Equal(t, "message too long", ErrMessageTooLong.Error())
}

func generateKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
