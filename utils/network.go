package utils

import (
	"encoding"
	"encoding/json"
	"errors"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
)

var ErrUnknownNetwork = errors.New("unknown network (known: mainnet, goerli, goerli2, integration)")

type Network int

// The following are necessary for Cobra and Viper, respectively, to unmarshal network
// CLI/config parameters properly.
var (
	_ pflag.Value              = (*Network)(nil)
	_ encoding.TextUnmarshaler = (*Network)(nil)
)

const (
	Mainnet Network = iota + 1
	Goerli
	Goerli2
	Integration
)

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Goerli:
		return "goerli"
	case Goerli2:
		return "goerli2"
	case Integration:
		return "integration"
	default:
		// Should not happen.
		panic(ErrUnknownNetwork)
	}
}

func (n Network) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

func (n *Network) MarshalJSON() ([]byte, error) {
	return json.RawMessage(`"` + n.String() + `"`), nil
}

func (n *Network) Set(s string) error {
	switch s {
	case "MAINNET", "mainnet":
		*n = Mainnet
	case "GOERLI", "goerli":
		*n = Goerli
	case "GOERLI2", "goerli2":
		*n = Goerli2
	case "INTEGRATION", "integration":
		*n = Integration
	default:
		return ErrUnknownNetwork
	}
	return nil
}

func (n *Network) Type() string {
	return "Network"
}

func (n *Network) UnmarshalText(text []byte) error {
	return n.Set(string(text))
}

func (n Network) ChainIDString() string {
	switch n {
	case Goerli, Integration:
		return "SN_GOERLI"
	case Mainnet:
		return "SN_MAIN"
	case Goerli2:
		return "SN_GOERLI2"
	default:
		// Should not happen.
		panic(ErrUnknownNetwork)
	}
}

// ChainID is the big-endian encoding of the chain id string as a felt.
func (n Network) ChainID() felt.Felt {
	return felt.FromBytes([]byte(n.ChainIDString()))
}

// FeeTokenAddress is the ETH fee token contract, identical on every public network.
func (n Network) FeeTokenAddress() felt.Address {
	return felt.Address(*felt.UnsafeFromString("0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"))
}

func (n Network) CoreContractAddress() (common.Address, error) {
	switch n {
	case Mainnet:
		return common.HexToAddress("0xc662c410C0ECf747543f5bA90660f6ABeBD9C8c4"), nil
	case Goerli:
		return common.HexToAddress("0xde29d060D45901Fb19ED6C6e959EB22d8626708e"), nil
	case Goerli2:
		return common.HexToAddress("0xa4eD3aD27c294565cB0DCc993BDdCC75432D498c"), nil
	case Integration:
		return common.Address{}, errors.New("l1 contract is not available on the integration network")
	default:
		// Should not happen.
		return common.Address{}, ErrUnknownNetwork
	}
}
