package tip

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana/binary"
)

const (
	TipHistoryAccountSize = (discriminatorSize + // discriminator
		32 + // tipper
		8 + // amount
		4 + MaxMessageLength + // message
		8) // timestamp
)

var tipHistoryAccountDiscriminator = []byte{168, 181, 168, 138, 249, 57, 106, 156}

type TipHistoryAccount struct {
	Tipper    ed25519.PublicKey
	Amount    uint64
	Message   string
	Timestamp int64
}

// Marshal serializes the record into a fixed TipHistoryAccountSize buffer,
// zero padded after the message.
func (obj *TipHistoryAccount) Marshal() []byte {
	data := make([]byte, TipHistoryAccountSize)

	var offset int
	binary.PutDiscriminator(data, tipHistoryAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Tipper, &offset)
	binary.PutUint64(data[offset:], obj.Amount, &offset)
	binary.PutString(data[offset:], obj.Message, &offset)
	binary.PutInt64(data[offset:], obj.Timestamp, &offset)

	return data
}

func (obj *TipHistoryAccount) Unmarshal(data []byte) error {
	if len(data) < discriminatorSize+32+8+4 {
		return ErrInvalidAccountData
	}
	if !bytes.Equal(data[:discriminatorSize], tipHistoryAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &obj.Tipper, &offset)
	binary.GetUint64(data[offset:], &obj.Amount, &offset)
	if err := binary.GetString(data[offset:], &obj.Message, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if len(data) < offset+8 {
		return ErrInvalidAccountData
	}
	binary.GetInt64(data[offset:], &obj.Timestamp, &offset)

	return nil
}
