package vault

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58/base58"

	"github.com/code-payments/code-vault/pkg/solana/binary"
)

const (
	discriminatorSize = binary.DiscriminatorSize

	VaultAccountSize = (discriminatorSize + // discriminator
		32 + // authority
		1) // locked
)

var vaultAccountDiscriminator = []byte{211, 8, 232, 43, 2, 152, 117, 119}

// VaultAccount is the persisted state of a vault. The vault balance is the
// account's own lamport balance and isn't part of the data.
type VaultAccount struct {
	Authority ed25519.PublicKey
	Locked    bool
}

func (obj *VaultAccount) Clone() *VaultAccount {
	authority := make(ed25519.PublicKey, len(obj.Authority))
	copy(authority, obj.Authority)

	return &VaultAccount{
		Authority: authority,
		Locked:    obj.Locked,
	}
}

func (obj *VaultAccount) String() string {
	var authority string
	if obj.Authority != nil {
		authority = base58.Encode(obj.Authority)
	}

	return fmt.Sprintf(
		"VaultAccount{authority=%s,locked=%v}",
		authority,
		obj.Locked,
	)
}

func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int
	binary.PutDiscriminator(data, vaultAccountDiscriminator, &offset)
	binary.PutKey32(data[offset:], obj.Authority, &offset)
	binary.PutBool(data[offset:], obj.Locked, &offset)

	return data
}

func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) < VaultAccountSize {
		return ErrInvalidAccountData
	}

	if !bytes.Equal(data[:discriminatorSize], vaultAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	offset := discriminatorSize
	binary.GetKey32(data[offset:], &obj.Authority, &offset)
	binary.GetBool(data[offset:], &obj.Locked, &offset)

	return nil
}
