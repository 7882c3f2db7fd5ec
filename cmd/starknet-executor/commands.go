package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	classHashF = "class-hash"
	saltF      = "salt"
	deployerF  = "deployer"
	calldataF  = "calldata"
)

func ConfigCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `This command prints the configuration after flags, environment and config file are merged.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func BlockContextCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "block-context",
		Short: "Print the block context transactions would execute in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blockCtx, err := cfg.BlockContext()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Field", "Value"})
			table.AppendBulk([][]string{
				{"Chain ID", blockCtx.ChainID.String()},
				{"Fee Token", blockCtx.FeeTokenAddress.String()},
				{"Protocol Version", blockCtx.Version.String()},
				{"Block Number", strconv.FormatUint(blockCtx.BlockInfo.BlockNumber, 10)},
				{"Block Timestamp", strconv.FormatUint(blockCtx.BlockInfo.BlockTimestamp, 10)},
				{"Gas Price", strconv.FormatUint(blockCtx.BlockInfo.GasPrice, 10)},
				{"Sequencer", blockCtx.BlockInfo.SequencerAddress.String()},
				{"Invoke Max Steps", strconv.FormatUint(blockCtx.InvokeTxMaxNSteps, 10)},
				{"Validate Max Steps", strconv.FormatUint(blockCtx.ValidateMaxNSteps, 10)},
				{"Max Recursion Depth", strconv.Itoa(blockCtx.MaxRecursionDepth)},
				{"Enforce L1 Handler Fee", strconv.FormatBool(blockCtx.EnforceL1HandlerFee)},
			})
			table.Render()

			weights := tablewriter.NewWriter(cmd.OutOrStdout())
			weights.SetHeader([]string{"Resource", "Fee Weight"})
			for _, name := range slices.Sorted(maps.Keys(blockCtx.CairoResourceFeeWeights)) {
				weights.Append([]string{name, strconv.FormatFloat(blockCtx.CairoResourceFeeWeights[name], 'f', -1, 64)})
			}
			weights.Render()
			return nil
		},
	}
}

func OSResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "os-resources",
		Short: "Print the resources the OS spends per transaction type and per syscall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", vm.NSteps, vm.PedersenBuiltin, vm.RangeCheckBuiltin})

			row := func(name string, r vm.ExecutionResources) []string {
				return []string{
					name,
					strconv.FormatUint(r.Steps, 10),
					strconv.FormatUint(r.Builtins[vm.PedersenBuiltin], 10),
					strconv.FormatUint(r.Builtins[vm.RangeCheckBuiltin], 10),
				}
			}
			for _, txType := range []execution.TransactionType{
				execution.TxTypeDeclare,
				execution.TxTypeDeploy,
				execution.TxTypeDeployAccount,
				execution.TxTypeInvokeFunction,
				execution.TxTypeL1Handler,
			} {
				r, _ := execution.OSTxResources(txType)
				table.Append(row(txType.String(), r))
			}
			for _, syscall := range execution.OSSyscalls() {
				r, _ := execution.OSSyscallResources(syscall)
				table.Append(row(syscall, r))
			}
			table.Render()
			return nil
		},
	}
}

func SelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selector NAME...",
		Short: "Compute entry point selectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				selector := crypto.SelectorFromName(name)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, selector.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func AddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Compute the address a contract is deployed at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			classHash, err := feltFlag(cmd, classHashF)
			if err != nil {
				return err
			}
			salt, err := feltFlag(cmd, saltF)
			if err != nil {
				return err
			}
			deployer, err := feltFlag(cmd, deployerF)
			if err != nil {
				return err
			}
			calldata, err := feltsFlag(cmd, calldataF)
			if err != nil {
				return err
			}

			address := core.ContractAddress(felt.Address(deployer), felt.ClassHash(classHash), salt, calldata)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), address.String())
			return err
		},
	}
	cmd.Flags().String(classHashF, "", "Class hash of the deployed contract.")
	cmd.Flags().String(saltF, "0x0", "Contract address salt.")
	cmd.Flags().String(deployerF, "0x0", "Deployer address, zero for deploy and deploy account transactions.")
	cmd.Flags().StringSlice(calldataF, nil, "Constructor calldata.")
	cobra.CheckErr(cmd.MarkFlagRequired(classHashF))
	return cmd
}

func feltFlag(cmd *cobra.Command, name string) (felt.Felt, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return felt.Felt{}, err
	}
	f, err := felt.NewFromString(value)
	if err != nil {
		return felt.Felt{}, fmt.Errorf("--%s: %w", name, err)
	}
	return *f, nil
}

func feltsFlag(cmd *cobra.Command, name string) ([]*felt.Felt, error) {
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, err
	}
	felts := make([]*felt.Felt, 0, len(values))
	for _, value := range values {
		f, err := felt.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		felts = append(felts, f)
	}
	return felts, nil
}
