package core

import (
	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

var (
	ConstructorSelector     = crypto.SelectorFromName("constructor")
	ExecuteSelector         = crypto.SelectorFromName("__execute__")
	ValidateSelector        = crypto.SelectorFromName("__validate__")
	ValidateDeclareSelector = crypto.SelectorFromName("__validate_declare__")
	ValidateDeploySelector  = crypto.SelectorFromName("__validate_deploy__")
	TransferSelector        = crypto.SelectorFromName("transfer")
	// Key of the event emitted by ERC20 transfers.
	TransferEventKey = crypto.SelectorFromName("Transfer")
	// Entry point used when no other entry point matches the selector.
	DefaultSelector = felt.Zero
)
