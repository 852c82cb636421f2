package tip

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/code-vault/pkg/solana/binary"
)

const TipEventName = "TipEvent"

var tipEventDiscriminator = []byte{213, 36, 191, 50, 28, 25, 189, 252}

const TipEventSize = discriminatorSize + 32 + 8

type TipEvent struct {
	Tipper ed25519.PublicKey
	Amount uint64
}

func (e *TipEvent) Name() string {
	return TipEventName
}

func (e *TipEvent) Marshal() []byte {
	data := make([]byte, TipEventSize)

	var offset int
	binary.PutDiscriminator(data, tipEventDiscriminator, &offset)
	binary.PutKey32(data[offset:], e.Tipper, &offset)
	binary.PutUint64(data[offset:], e.Amount, &offset)

	return data
}

func (e *TipEvent) Unmarshal(data []byte) error {
	if len(data) < TipEventSize || !bytes.Equal(data[:discriminatorSize], tipEventDiscriminator) {
		return ErrInvalidEventData
	}

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &e.Tipper, &offset)
	binary.GetUint64(data[offset:], &e.Amount, &offset)

	return nil
}
