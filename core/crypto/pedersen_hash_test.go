package crypto_test

import (
	"fmt"
	"testing"

	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPedersen(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{
			"0x03d937c035c878245caf64531a5756109c53068da139362728feb561405371cb",
			"0x0208a0a10250e382e1e4bbe2880906c2791bf6275695e02fbbc6aeff9cd8b31a",
			"0x030e480bed5fe53fa909cc0f8c4d99b8f9f2c016be4c41e13a4848797979c662",
		},
		{
			"0x58f580910a6ca59b28927c08fe6c43e2e303ca384badc365795fc645d479d45",
			"0x78734f65a067be9bdb39de18434d71e79f7b6466a4b66bbd979ab9e7515fe0b",
			"0x68cc0b76cddd1dd4ed2301ada9b7c872b23875d5ff837b3a87993e0d9996b87",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("TestHash %d", i), func(t *testing.T) {
			a := felt.UnsafeFromString(tt.a)
			b := felt.UnsafeFromString(tt.b)
			want := felt.UnsafeFromString(tt.want)

			ans := crypto.Pedersen(a, b)
			assert.Equal(t, want, ans)
			// second lookup is served from the cache
			assert.Equal(t, want, crypto.Pedersen(a, b))
		})
	}
}

func TestPedersenArray(t *testing.T) {
	tests := [...]struct {
		input []string
		want  string
	}{
		// Contract address calculation.
		{
			input: []string{
				// Hex representation of []byte("STARKNET_CONTRACT_ADDRESS").
				"0x535441524b4e45545f434f4e54524143545f41444452455353",
				// caller_address.
				"0x0",
				// salt.
				"0x5bebda1b28ba6daa824126577b9fbc984033e8b18360f5e1ef694cb172c7aa5",
				// class_hash.
				"0x0439218681f9108b470d2379cf589ef47e60dc5888ee49ec70071671d74ca9c6",
				// calldata_hash, h(0, 0).
				"0x49ee3eba8c1600700ee1b87eb599f16716b0b1022947733551fde4050ca6804",
			},
			want: "0x43c6817e70b3fd99a4f120790b2e82c6843df62b573fdadf9e2d677b60ac5eb",
		},
		// Transaction hash of mainnet tx 0xe0a2e45a80bb827967e096bcf58874f6c01c191e0a0530624cba66a508ae75.
		{
			input: []string{
				// Hex representation of []byte("deploy").
				"0x6465706c6f79",
				// contract_address.
				"0x20cfa74ee3564b4cd5435cdace0f9c4d43b939620e4a0bb5076105df0a626c6",
				// selector of "constructor".
				"0x28ffe4ff0f226a9107253e17a904099aa4f63a02a5621de0576e5aa71bc5194",
				// calldata_hash.
				"0x7885ba4f628b6cdcd0b5e6282d2a1b17fe7cd4dd536230c5db3eac890528b4d",
				// chain_id. Hex representation of []byte("SN_MAIN").
				"0x534e5f4d41494e",
			},
			want: "0xe0a2e45a80bb827967e096bcf58874f6c01c191e0a0530624cba66a508ae75",
		},
		// Hash of an empty array is defined to be h(0, 0).
		{
			input: make([]string, 0),
			want:  "0x49ee3eba8c1600700ee1b87eb599f16716b0b1022947733551fde4050ca6804",
		},
	}
	for _, test := range tests {
		var digest, digestWhole crypto.PedersenDigest
		data := make([]*felt.Felt, len(test.input))
		for i, item := range test.input {
			elem := felt.UnsafeFromString(item)
			digest.Update(elem)
			data[i] = elem
		}
		digestWhole.Update(data...)
		want := felt.UnsafeFromString(test.want)
		assert.Equal(t, want, crypto.PedersenArray(data...))
		assert.Equal(t, want, digest.Finish())
		assert.Equal(t, want, digestWhole.Finish())
	}
}

func TestHashChainProperties(t *testing.T) {
	x := felt.FromUint64(7)
	y := felt.FromUint64(11)
	z := felt.FromUint64(13)

	t.Run("empty chain is deterministic and differs from [0]", func(t *testing.T) {
		assert.Equal(t, crypto.PedersenArray(), crypto.PedersenArray())
		assert.NotEqual(t, crypto.PedersenArray(), crypto.PedersenArray(&felt.Zero))
	})

	t.Run("length suffix prevents prefix collapse", func(t *testing.T) {
		collapsed := crypto.Pedersen(crypto.Pedersen(&felt.Zero, &x), &y)
		require.NotEqual(t, crypto.PedersenArray(&x, &y, &z), crypto.PedersenArray(collapsed, &z))
	})
}

func BenchmarkPedersenArray(b *testing.B) {
	for _, n := range []int{3, 10, 40} {
		b.Run(fmt.Sprintf("Number of felts: %d", n), func(b *testing.B) {
			elems := make([]*felt.Felt, n)
			for i := range elems {
				f, err := new(felt.Felt).SetRandom()
				require.NoError(b, err)
				elems[i] = f
			}
			b.ResetTimer()
			for range b.N {
				crypto.PedersenArray(elems...)
			}
		})
	}
}
