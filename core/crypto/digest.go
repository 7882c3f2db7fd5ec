package crypto

import "github.com/NethermindEth/starknet-executor/core/felt"

type Digest interface {
	Update(...*felt.Felt) Digest
	Finish() *felt.Felt
}
