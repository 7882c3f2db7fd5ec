package crypto_test

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigInts(vals ...int64) []*big.Int {
	res := make([]*big.Int, len(vals))
	for i, v := range vals {
		res[i] = big.NewInt(v)
	}
	return res
}

func TestComputeHashOnElements(t *testing.T) {
	tests := map[string]struct {
		input []*big.Int
		want  string
	}{
		"single": {
			input: bigInts(1),
			want:  "3416122613774376552656914666405609308365843021349846777564025639164215424932",
		},
		"four": {
			input: bigInts(1, 2, 3, 4),
			want:  "2904394281987469213428308031512088126582033652660815761074595741628288213124",
		},
		"mixed": {
			input: bigInts(0, 15, 1232, 8918274123, 46534),
			want:  "183592112522859067029852736072730560878910822643949684307130835577741550985",
		},
		"empty": {
			input: nil,
			want:  "0x49ee3eba8c1600700ee1b87eb599f16716b0b1022947733551fde4050ca6804",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := crypto.ComputeHashOnElements(test.input)
			require.NoError(t, err)
			assert.Equal(t, felt.UnsafeFromString(test.want), got)
		})
	}

	t.Run("non canonical element", func(t *testing.T) {
		_, err := crypto.ComputeHashOnElements([]*big.Int{big.NewInt(1), felt.Modulus()})
		require.ErrorIs(t, err, crypto.ErrFailToComputeHash)

		_, err = crypto.ComputeHashOnElements([]*big.Int{big.NewInt(-1)})
		require.ErrorIs(t, err, crypto.ErrFailToComputeHash)
	})
}
