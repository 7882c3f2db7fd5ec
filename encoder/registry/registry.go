package registry

import (
	"reflect"
	"sync"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/encoder"
)

var once sync.Once

//nolint:gochecknoinits
func init() {
	once.Do(func() {
		types := []reflect.Type{
			reflect.TypeOf(core.DeprecatedClass{}),
			reflect.TypeOf(core.CasmClass{}),
		}

		for _, t := range types {
			err := encoder.RegisterType(t)
			if err != nil {
				panic(err)
			}
		}
	})
}
