package main

import (
	"github.com/NethermindEth/starknet-executor/utils"
	"github.com/spf13/cobra"
)

var Version string

const (
	configF              = "config"
	logLevelF            = "log-level"
	colourF              = "colour"
	networkF             = "network"
	protocolVersionF     = "protocol-version"
	blockNumberF         = "block-number"
	blockTimestampF      = "block-timestamp"
	gasPriceF            = "gas-price"
	sequencerAddressF    = "sequencer-address"
	enforceL1HandlerFeeF = "enforce-l1-handler-fee"

	defaultConfig              = ""
	defaultColour              = true
	defaultProtocolVersion     = "0.12.3"
	defaultBlockNumber         = uint64(0)
	defaultBlockTimestamp      = uint64(0)
	defaultGasPrice            = uint64(100_000_000_000)
	defaultSequencerAddress    = "0x1176a1bd84444c89232ec27754698e5d2e7e1a7f1539f12027f28b23ec9f3d8"
	defaultEnforceL1HandlerFee = false

	configFlagUsage          = "The yaml configuration file."
	logLevelFlagUsage        = "Options: debug, info, warn, error."
	colourUsage              = "Colourize the log output (ANSI escape codes)."
	networkUsage             = "Options: mainnet, goerli, goerli2, integration."
	protocolVersionUsage     = "Starknet protocol version of the block. It selects the fee weights and step limits."
	blockNumberUsage         = "Number of the block the transactions execute in."
	blockTimestampUsage      = "Timestamp of the block the transactions execute in."
	gasPriceUsage            = "L1 gas price of the block, in wei."
	sequencerAddressUsage    = "Address receiving the transaction fees."
	enforceL1HandlerFeeUsage = "Reject L1 handler transactions that paid less than their actual fee on L1."
)

// NewCmd builds the command tree. Every subcommand sees the loaded Config.
func NewCmd() *cobra.Command {
	var (
		cfgFile string
		cfg     = new(Config)
	)

	rootCmd := &cobra.Command{
		Use:           "starknet-executor",
		Short:         "Starknet transaction execution toolkit.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd, cfgFile, cfg); err != nil {
			return err
		}

		logger, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
		if err != nil {
			return err
		}
		logger.Debugw("Loaded config", "network", cfg.Network.String(), "protocolVersion", cfg.ProtocolVersion)
		return nil
	}

	defaultLogLevel := utils.INFO
	defaultNetwork := utils.Mainnet

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	flags.Var(&defaultLogLevel, logLevelF, logLevelFlagUsage)
	flags.Bool(colourF, defaultColour, colourUsage)
	flags.Var(&defaultNetwork, networkF, networkUsage)
	flags.String(protocolVersionF, defaultProtocolVersion, protocolVersionUsage)
	flags.Uint64(blockNumberF, defaultBlockNumber, blockNumberUsage)
	flags.Uint64(blockTimestampF, defaultBlockTimestamp, blockTimestampUsage)
	flags.Uint64(gasPriceF, defaultGasPrice, gasPriceUsage)
	flags.String(sequencerAddressF, defaultSequencerAddress, sequencerAddressUsage)
	flags.Bool(enforceL1HandlerFeeF, defaultEnforceL1HandlerFee, enforceL1HandlerFeeUsage)

	rootCmd.AddCommand(
		ConfigCmd(cfg),
		BlockContextCmd(cfg),
		OSResourcesCmd(),
		SelectorCmd(),
		AddressCmd(),
		TxHashCmd(cfg),
	)
	return rootCmd
}
