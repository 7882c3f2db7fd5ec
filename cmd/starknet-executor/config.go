package main

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/utils"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "STARKNET_EXECUTOR"

// Config is the block environment the commands work against.
type Config struct {
	LogLevel            utils.LogLevel `mapstructure:"log-level" yaml:"log-level"`
	Colour              bool           `mapstructure:"colour" yaml:"colour"`
	Network             utils.Network  `mapstructure:"network" yaml:"network" validate:"required"`
	ProtocolVersion     string         `mapstructure:"protocol-version" yaml:"protocol-version" validate:"block_version"`
	BlockNumber         uint64         `mapstructure:"block-number" yaml:"block-number"`
	BlockTimestamp      uint64         `mapstructure:"block-timestamp" yaml:"block-timestamp"`
	GasPrice            uint64         `mapstructure:"gas-price" yaml:"gas-price" validate:"gt=0"`
	SequencerAddress    string         `mapstructure:"sequencer-address" yaml:"sequencer-address" validate:"omitempty,hexadecimal"` //nolint:lll
	EnforceL1HandlerFee bool           `mapstructure:"enforce-l1-handler-fee" yaml:"enforce-l1-handler-fee"`
}

// BlockContext builds the execution environment described by c.
func (c *Config) BlockContext() (*execution.BlockContext, error) {
	var sequencer felt.Felt
	if c.SequencerAddress != "" {
		parsed, err := felt.NewFromString(c.SequencerAddress)
		if err != nil {
			return nil, err
		}
		sequencer = *parsed
	}

	blockCtx, err := execution.NewBlockContext(c.Network, execution.BlockInfo{
		BlockNumber:      c.BlockNumber,
		BlockTimestamp:   c.BlockTimestamp,
		GasPrice:         c.GasPrice,
		SequencerAddress: felt.Address(sequencer),
	}, c.ProtocolVersion)
	if err != nil {
		return nil, err
	}
	blockCtx.EnforceL1HandlerFee = c.EnforceL1HandlerFee
	return blockCtx, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := validate.RegisterValidation("block_version", func(fl validator.FieldLevel) bool {
			_, err := core.ParseBlockVersion(fl.Field().String())
			return err == nil
		}); err != nil {
			panic("failed to register validation: " + err.Error())
		}
		// Networks are validated by their name.
		validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if n, ok := field.Interface().(utils.Network); ok && n >= utils.Mainnet && n <= utils.Integration {
				return n.String()
			}
			return ""
		}, utils.Network(0))
	})
	return validate
}

// loadConfig fills cfg from, in increasing precedence, flag defaults, the yaml config file, the
// environment and the flags set on the command line.
func loadConfig(cmd *cobra.Command, cfgFile string, cfg *Config) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return err
	}
	return configValidator().Struct(cfg)
}
