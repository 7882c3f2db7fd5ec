package core_test

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/stretchr/testify/assert"
)

func feltsFromUint64(vals ...uint64) []*felt.Felt {
	res := make([]*felt.Felt, len(vals))
	for i, v := range vals {
		f := felt.FromUint64(v)
		res[i] = &f
	}
	return res
}

func TestContractAddress(t *testing.T) {
	tests := map[string]struct {
		deployer  felt.Address
		classHash felt.ClassHash
		salt      felt.Felt
		calldata  []*felt.Felt
		want      string
	}{
		// https://alpha-mainnet.starknet.io/feeder_gateway/get_transaction?transactionHash=0x6486c6303dba2f364c684a2e9609211c5b8e417e767f37b527cda51e776e6f0
		"mainnet deploy": {
			deployer:  felt.Address{},
			classHash: felt.ClassHash(*felt.UnsafeFromString("0x46f844ea1a3b3668f81d38b5c1bd55e816e0373802aefe732138628f0133486")),
			salt:      *felt.UnsafeFromString("0x74dc2fe193daf1abd8241b63329c1123214842b96ad7fd003d25512598a956b"),
			calldata: []*felt.Felt{
				felt.UnsafeFromString("0x6d706cfbac9b8262d601c38251c5fbe0497c3a96cc91a92b08d91b61d9e70c4"),
				felt.UnsafeFromString("0x79dc0da7c54b95f10aa182ad0a46400db63156920adb65eca2654c0945a463"),
				felt.UnsafeFromString("0x2"),
				felt.UnsafeFromString("0x6658165b4984816ab189568637bedec5aa0a18305909c7f5726e4a16e3afef6"),
				felt.UnsafeFromString("0x6b648b36b074a91eee55730f5f5e075ec19c0a8f9ffb0903cefeee93b6ff328"),
			},
			want: "0x3ec215c6c9028ff671b46a2a9814970ea23ed3c4bcc3838c6d1dcbf395263c3",
		},
		"small values": {
			deployer:  felt.AddressFromUint64(5),
			classHash: felt.ClassHash(felt.FromUint64(2)),
			salt:      felt.FromUint64(1),
			calldata:  feltsFromUint64(3, 4),
			want:      "1885555033409779003200115284723341705041371741573881252130189632266543809788",
		},
		"three calldata": {
			deployer:  felt.AddressFromUint64(87123),
			classHash: felt.ClassHash(felt.FromUint64(543)),
			salt:      felt.FromUint64(756),
			calldata:  feltsFromUint64(124543, 5345345, 89),
			want:      "2864535578326518086698404810362457605993575745991923092043914398137702365865",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			address := core.ContractAddress(tt.deployer, tt.classHash, tt.salt, tt.calldata)
			want := felt.Address(*felt.UnsafeFromString(tt.want))
			assert.Equal(t, want, address)
		})
	}
}

func TestContractAddressIsBelowUpperBound(t *testing.T) {
	for i := range uint64(20) {
		address := core.ContractAddress(felt.AddressFromUint64(i), felt.ClassHash(felt.FromUint64(i*7)),
			felt.FromUint64(i*13), feltsFromUint64(i))
		f := address.Felt()
		assert.Negative(t, f.BigInt(new(big.Int)).Cmp(core.L2AddressUpperBound))
	}
}
