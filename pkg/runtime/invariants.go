package runtime

import (
	"bytes"
	"crypto/ed25519"
	"math/bits"

	"github.com/code-payments/code-vault/pkg/solana"
)

// preAccount is a snapshot of an account taken before a program runs, used to
// verify the changes the program made.
type preAccount struct {
	state      *accountState
	isWritable bool

	owner    ed25519.PublicKey
	lamports uint64
	data     []byte
}

// snapshotAccounts takes one snapshot per distinct account. An account passed
// more than once is writable if any reference is.
func snapshotAccounts(accounts []*AccountInfo) []*preAccount {
	var res []*preAccount
	byState := make(map[*accountState]*preAccount)

	for _, info := range accounts {
		if pre, ok := byState[info.state]; ok {
			pre.isWritable = pre.isWritable || info.IsWritable
			continue
		}

		pre := &preAccount{
			state:      info.state,
			isWritable: info.IsWritable,
		}
		pre.update()

		byState[info.state] = pre
		res = append(res, pre)
	}

	return res
}

func (p *preAccount) update() {
	p.owner = append(ed25519.PublicKey{}, p.state.owner...)
	p.lamports = p.state.lamports
	p.data = append([]byte{}, p.state.data...)
}

// verify checks that program was allowed to make the changes observed since
// the snapshot was taken.
func (p *preAccount) verify(program ed25519.PublicKey) error {
	post := p.state
	isOwner := bytes.Equal(program, p.owner)

	// Only the owner may assign a new owner, and only for a writable account
	// that holds no data
	if !bytes.Equal(p.owner, post.owner) {
		if !p.isWritable || !isOwner || !isZeroed(post.data) {
			return solana.InstructionErrorModifiedProgramID
		}
	}

	// Only the owner may debit an account
	if !isOwner && post.lamports < p.lamports {
		return solana.InstructionErrorExternalAccountLamportSpend
	}

	if !p.isWritable && post.lamports != p.lamports {
		return solana.InstructionErrorReadonlyLamportChange
	}

	// Only the owner may change the data of a writable account
	if !bytes.Equal(p.data, post.data) {
		if !p.isWritable {
			return solana.InstructionErrorReadonlyDataModified
		}
		if !isOwner {
			return solana.InstructionErrorExternalAccountDataModified
		}
	}

	return nil
}

// lamportTotal is an overflow-safe 128 bit sum of lamports
type lamportTotal struct {
	hi, lo uint64
}

func (t *lamportTotal) add(lamports uint64) {
	var carry uint64
	t.lo, carry = bits.Add64(t.lo, lamports, 0)
	t.hi += carry
}

func sumPostLamports(pre []*preAccount) lamportTotal {
	var total lamportTotal
	for _, p := range pre {
		total.add(p.state.lamports)
	}
	return total
}

func sumPreLamports(pre []*preAccount) lamportTotal {
	var total lamportTotal
	for _, p := range pre {
		total.add(p.lamports)
	}
	return total
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
