package crypto

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/NethermindEth/starknet-executor/core/felt"
)

var ErrFailToComputeHash = errors.New("failed to compute hash")

// ComputeHashOnElements is PedersenArray over arbitrary integers. Every value has to be a
// canonical field element.
func ComputeHashOnElements(values []*big.Int) (*felt.Felt, error) {
	p := felt.Modulus()
	elems := make([]*felt.Felt, len(values))
	for i, v := range values {
		if v == nil || v.Sign() < 0 || v.Cmp(p) >= 0 {
			return nil, fmt.Errorf("%w: element %d (%v) is not a field element", ErrFailToComputeHash, i, v)
		}
		f := felt.FromBigInt(v)
		elems[i] = &f
	}
	return PedersenArray(elems...), nil
}
