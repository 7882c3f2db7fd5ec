package main

import (
	"fmt"
	"io"

	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/transaction"
	"github.com/spf13/cobra"
)

const (
	senderF            = "sender"
	contractF          = "contract"
	entryPointF        = "entry-point"
	maxFeeF            = "max-fee"
	versionF           = "version"
	nonceF             = "nonce"
	compiledClassHashF = "compiled-class-hash"
)

func TxHashCmd(cfg *Config) *cobra.Command {
	txHashCmd := &cobra.Command{
		Use:   "tx-hash",
		Short: "Compute transaction hashes on the configured network",
	}
	txHashCmd.AddCommand(
		invokeHashCmd(cfg),
		declareHashCmd(cfg),
		deployAccountHashCmd(cfg),
		l1HandlerHashCmd(cfg),
	)
	return txHashCmd
}

func accountFlags(cmd *cobra.Command) {
	cmd.Flags().String(maxFeeF, "0x0", "Max fee the account pays.")
	cmd.Flags().String(versionF, "0x1", "Transaction version.")
	cmd.Flags().String(nonceF, "0x0", "Account nonce.")
}

type accountFields struct {
	maxFee, version, nonce felt.Felt
}

func parseAccountFlags(cmd *cobra.Command) (accountFields, error) {
	var (
		fields accountFields
		err    error
	)
	if fields.maxFee, err = feltFlag(cmd, maxFeeF); err != nil {
		return fields, err
	}
	if fields.version, err = feltFlag(cmd, versionF); err != nil {
		return fields, err
	}
	fields.nonce, err = feltFlag(cmd, nonceF)
	return fields, err
}

func printHash(w io.Writer, tx transaction.Transaction) error {
	hash := tx.Hash()
	_, err := fmt.Fprintln(w, hash.String())
	return err
}

func invokeHashCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Hash an invoke transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sender, err := feltFlag(cmd, senderF)
			if err != nil {
				return err
			}
			calldata, err := feltsFlag(cmd, calldataF)
			if err != nil {
				return err
			}
			fields, err := parseAccountFlags(cmd)
			if err != nil {
				return err
			}
			entryPoint, err := cmd.Flags().GetString(entryPointF)
			if err != nil {
				return err
			}

			tx := transaction.NewInvokeFunction(cfg.Network.ChainID(), felt.Address(sender),
				crypto.SelectorFromName(entryPoint), calldata, nil, fields.maxFee, fields.version, fields.nonce)
			return printHash(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().String(senderF, "", "Sender address, the called contract for version 0.")
	cmd.Flags().String(entryPointF, "__execute__", "Entry point name, only hashed by version 0.")
	cmd.Flags().StringSlice(calldataF, nil, "Calldata.")
	accountFlags(cmd)
	cobra.CheckErr(cmd.MarkFlagRequired(senderF))
	return cmd
}

func declareHashCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "declare",
		Short: "Hash a declare transaction, version 2 when a compiled class hash is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sender, err := feltFlag(cmd, senderF)
			if err != nil {
				return err
			}
			classHash, err := feltFlag(cmd, classHashF)
			if err != nil {
				return err
			}
			fields, err := parseAccountFlags(cmd)
			if err != nil {
				return err
			}

			chainID := cfg.Network.ChainID()
			if !cmd.Flags().Changed(compiledClassHashF) {
				return printHash(cmd.OutOrStdout(), transaction.NewDeclare(chainID, felt.ClassHash(classHash), nil,
					felt.Address(sender), fields.maxFee, fields.version, fields.nonce, nil))
			}

			compiledClassHash, err := feltFlag(cmd, compiledClassHashF)
			if err != nil {
				return err
			}
			return printHash(cmd.OutOrStdout(), transaction.NewDeclareV2(chainID, felt.ClassHash(classHash),
				felt.CompiledClassHash(compiledClassHash), nil, felt.Address(sender), fields.maxFee, fields.nonce, nil))
		},
	}
	cmd.Flags().String(senderF, "", "Sender address.")
	cmd.Flags().String(classHashF, "", "Hash of the declared class.")
	cmd.Flags().String(compiledClassHashF, "", "Compiled class hash of a sierra class.")
	accountFlags(cmd)
	cobra.CheckErr(cmd.MarkFlagRequired(senderF))
	cobra.CheckErr(cmd.MarkFlagRequired(classHashF))
	return cmd
}

func deployAccountHashCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy-account",
		Short: "Hash a deploy account transaction and print the account address",
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
			calldata, err := feltsFlag(cmd, calldataF)
			if err != nil {
				return err
			}
			fields, err := parseAccountFlags(cmd)
			if err != nil {
				return err
			}

			tx := transaction.NewDeployAccount(cfg.Network.ChainID(), felt.ClassHash(classHash), salt, calldata, nil,
				fields.maxFee, fields.version, fields.nonce)
			if _, err = fmt.Fprintln(cmd.OutOrStdout(), tx.ContractAddress.String()); err != nil {
				return err
			}
			return printHash(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().String(classHashF, "", "Class hash of the account.")
	cmd.Flags().String(saltF, "0x0", "Contract address salt.")
	cmd.Flags().StringSlice(calldataF, nil, "Constructor calldata.")
	accountFlags(cmd)
	cobra.CheckErr(cmd.MarkFlagRequired(classHashF))
	return cmd
}

func l1HandlerHashCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "l1-handler",
		Short: "Hash an L1 handler transaction and the L1 to L2 message it consumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contract, err := feltFlag(cmd, contractF)
			if err != nil {
				return err
			}
			calldata, err := feltsFlag(cmd, calldataF)
			if err != nil {
				return err
			}
			nonce, err := feltFlag(cmd, nonceF)
			if err != nil {
				return err
			}
			entryPoint, err := cmd.Flags().GetString(entryPointF)
			if err != nil {
				return err
			}

			tx := transaction.NewL1Handler(cfg.Network.ChainID(), felt.Address(contract),
				crypto.SelectorFromName(entryPoint), calldata, nonce, nil)
			if err = printHash(cmd.OutOrStdout(), tx); err != nil {
				return err
			}

			msg, err := tx.Message()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg.Hash().Hex())
			return err
		},
	}
	cmd.Flags().String(contractF, "", "Address of the L2 contract handling the message.")
	cmd.Flags().String(entryPointF, "", "Name of the L1 handler entry point.")
	cmd.Flags().StringSlice(calldataF, nil, "Calldata, starting with the L1 sender.")
	cmd.Flags().String(nonceF, "0x0", "Nonce of the L1 to L2 message.")
	cobra.CheckErr(cmd.MarkFlagRequired(contractF))
	cobra.CheckErr(cmd.MarkFlagRequired(entryPointF))
	return cmd
}
