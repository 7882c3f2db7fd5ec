package felt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Felt is an element of the Starknet prime field.
type Felt fp.Element

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Felt
	Bits  = fp.Bits  // number of bits needed to represent a Felt
	Bytes = fp.Bytes // number of bytes needed to represent a Felt
)

const (
	Base16 = 16
	Base10 = 10
)

var (
	ErrNonCanonical = errors.New("value is not a canonical field element")
	ErrOverflow     = errors.New("felt does not fit in uint64")
)

var (
	// Zero felt constant
	Zero = Felt{}
	One  = FromUint64(1)
)

var bigIntPool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// Modulus returns the field prime P.
func Modulus() *big.Int {
	return fp.Modulus()
}

func FromUint64(v uint64) Felt {
	var f fp.Element
	f.SetUint64(v)
	return Felt(f)
}

// FromBytes interprets b as a big-endian integer and reduces it modulo P.
func FromBytes(b []byte) Felt {
	var f Felt
	f.SetBytes(b)
	return f
}

// FromBigInt reduces v modulo P.
func FromBigInt(v *big.Int) Felt {
	var f Felt
	f.SetBigInt(v)
	return f
}

// NewFromString parses a hex (0x prefixed) or decimal number. Values outside [0, P) are rejected.
func NewFromString(s string) (*Felt, error) {
	v := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(v)

	if _, ok := v.SetString(s, 0); !ok {
		return nil, fmt.Errorf("can't parse %q into a felt", s)
	}
	if v.Sign() < 0 || v.Cmp(fp.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNonCanonical, s)
	}
	f := FromBigInt(v)
	return &f, nil
}

// UnsafeFromString panics if s is not a valid felt. Only use it with constants.
func UnsafeFromString(s string) *Felt {
	f, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Impl returns the underlying field element type
func (z *Felt) Impl() *fp.Element {
	return (*fp.Element)(z)
}

// SetBytes interprets e as a big-endian integer and reduces it modulo P.
func (z *Felt) SetBytes(e []byte) *Felt {
	z.Impl().SetBytes(e)
	return z
}

// SetBytesCanonical sets z to the 32-byte big-endian value e and errors if it is not in [0, P).
func (z *Felt) SetBytesCanonical(e []byte) error {
	if len(e) != Bytes {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrNonCanonical, Bytes, len(e))
	}
	el, err := fp.BigEndian.Element((*[Bytes]byte)(e))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNonCanonical, err)
	}
	*z = Felt(el)
	return nil
}

// SetString forwards the call to underlying field element implementation
func (z *Felt) SetString(number string) (*Felt, error) {
	_, err := z.Impl().SetString(number)
	return z, err
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.Impl().SetUint64(v)
	return z
}

// SetBigInt forwards the call to underlying field element implementation
func (z *Felt) SetBigInt(v *big.Int) *Felt {
	z.Impl().SetBigInt(v)
	return z
}

// SetRandom forwards the call to underlying field element implementation
func (z *Felt) SetRandom() (*Felt, error) {
	_, err := z.Impl().SetRandom()
	return z, err
}

// BigInt sets and returns res as the regular (non montgomery) integer value of z.
func (z *Felt) BigInt(res *big.Int) *big.Int {
	return z.Impl().BigInt(res)
}

// Uint64 returns the value of z if it fits in 64 bits.
func (z *Felt) Uint64() (uint64, error) {
	if !z.Impl().IsUint64() {
		return 0, ErrOverflow
	}
	return z.Impl().Uint64(), nil
}

// String returns the 0x prefixed hex representation of z
func (z *Felt) String() string {
	return "0x" + z.Text(Base16)
}

// Text forwards the call to underlying field element implementation
func (z *Felt) Text(base int) string {
	return z.Impl().Text(base)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.Impl().Equal(x.Impl())
}

// Cmp forwards the call to underlying field element implementation
func (z *Felt) Cmp(x *Felt) int {
	return z.Impl().Cmp(x.Impl())
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.Impl().IsZero()
}

// IsOne forwards the call to underlying field element implementation
func (z *Felt) IsOne() bool {
	return z.Impl().IsOne()
}

// Add forwards the call to underlying field element implementation
func (z *Felt) Add(x, y *Felt) *Felt {
	z.Impl().Add(x.Impl(), y.Impl())
	return z
}

// Sub forwards the call to underlying field element implementation
func (z *Felt) Sub(x, y *Felt) *Felt {
	z.Impl().Sub(x.Impl(), y.Impl())
	return z
}

// Mul forwards the call to underlying field element implementation
func (z *Felt) Mul(x, y *Felt) *Felt {
	z.Impl().Mul(x.Impl(), y.Impl())
	return z
}

// Bytes returns the 32-byte big-endian representation of z
func (z *Felt) Bytes() [32]byte {
	return z.Impl().Bytes()
}

// Marshal forwards the call to underlying field element implementation
func (z *Felt) Marshal() []byte {
	return z.Impl().Marshal()
}

// Unmarshal forwards the call to underlying field element implementation
func (z *Felt) Unmarshal(e []byte) {
	z.Impl().SetBytes(e)
}

func (z *Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

// UnmarshalJSON accepts numbers and strings as input. Hex strings without a prefix are accepted too.
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > Bits*3 {
		return errors.New("value too large (max = Element.Bits * 3)")
	}

	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}

	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	if _, ok := vv.SetString(s, 0); !ok {
		if _, ok := vv.SetString(s, Base16); !ok {
			return errors.New("can't parse into a big.Int: " + s)
		}
	}

	z.Impl().SetBigInt(vv)
	return nil
}
