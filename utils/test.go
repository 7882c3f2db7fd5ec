package utils

import (
	"testing"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/stretchr/testify/require"
)

func HexToFelt(t testing.TB, hex string) *felt.Felt {
	t.Helper()

	f, err := felt.NewFromString(hex)
	require.NoError(t, err)
	return f
}
