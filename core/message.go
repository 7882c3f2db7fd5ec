package core

import (
	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/ethereum/go-ethereum/common"
)

type L1ToL2Message struct {
	From     common.Address
	To       felt.Address
	Nonce    felt.Felt
	Selector felt.Felt
	Payload  []*felt.Felt
}

// Hash is the keccak256 of the message as it is logged by the Starknet core contract on L1:
// from, to, nonce, selector, len(payload), payload... each as a 32-byte word.
func (m *L1ToL2Message) Hash() common.Hash {
	words := make([][]byte, 0, len(m.Payload)+5)
	words = append(words, common.LeftPadBytes(m.From.Bytes(), common.HashLength))

	to := m.To.Bytes()
	nonce := m.Nonce.Bytes()
	selector := m.Selector.Bytes()
	length := felt.FromUint64(uint64(len(m.Payload)))
	lengthBytes := length.Bytes()
	words = append(words, to[:], nonce[:], selector[:], lengthBytes[:])
	for _, p := range m.Payload {
		b := p.Bytes()
		words = append(words, b[:])
	}
	return common.BytesToHash(crypto.Keccak256(words...))
}

type L2ToL1Message struct {
	From    felt.Address
	To      common.Address
	Payload []*felt.Felt
}
