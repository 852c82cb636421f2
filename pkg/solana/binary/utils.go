package binary

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	DiscriminatorSize = 8
)

// Discriminator returns the 8 byte Anchor discriminator for the provided
// namespace and name, for example ("global", "deposit") or ("account", "Vault").
func Discriminator(namespace, name string) []byte {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", namespace, name)))
	return h[:DiscriminatorSize]
}

func PutDiscriminator(dst []byte, src []byte, offset *int) {
	copy(dst, src[:DiscriminatorSize])
	*offset += DiscriminatorSize
}

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst, src)
	*offset += ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutInt64(dst []byte, v int64, offset *int) {
	PutUint64(dst, uint64(v), offset)
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func PutBool(dst []byte, v bool, offset *int) {
	var b uint8
	if v {
		b = 1
	}
	PutUint8(dst, b, offset)
}

// PutString writes a length-prefixed (u32) string.
func PutString(dst []byte, v string, offset *int) {
	var lenOffset int
	PutUint32(dst, uint32(len(v)), &lenOffset)
	copy(dst[lenOffset:], v)
	*offset += lenOffset + len(v)
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src)
	*offset += ed25519.PublicKeySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetInt64(src []byte, dst *int64, offset *int) {
	var v uint64
	GetUint64(src, &v, offset)
	*dst = int64(v)
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}

func GetBool(src []byte, dst *bool, offset *int) {
	var b uint8
	GetUint8(src, &b, offset)
	*dst = b != 0
}

// GetString reads a length-prefixed (u32) string. The caller is expected to
// have validated that src holds at least 4 bytes.
func GetString(src []byte, dst *string, offset *int) error {
	var length uint32
	var lenOffset int
	GetUint32(src, &length, &lenOffset)

	if uint64(len(src)) < uint64(lenOffset)+uint64(length) {
		return errors.Errorf("invalid string length: %d", length)
	}

	*dst = string(src[lenOffset : lenOffset+int(length)])
	*offset += lenOffset + int(length)
	return nil
}
