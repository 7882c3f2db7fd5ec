package felt

type FeltLike interface {
	~[Limbs]uint64
}

func IsZero[F FeltLike](v F) bool {
	f := Felt(v)
	return f.IsZero()
}

func Equal[F FeltLike](a, b F) bool {
	fa := Felt(a)
	fb := Felt(b)
	return fa.Equal(&fb)
}

// Ptrs returns pointers to copies of vals. Calldata and retdata are carried as []*Felt.
func Ptrs(vals ...Felt) []*Felt {
	res := make([]*Felt, len(vals))
	for i := range vals {
		v := vals[i]
		res[i] = &v
	}
	return res
}
