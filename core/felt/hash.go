package felt

// ClassHash is the content identifier of a contract class.
type ClassHash Felt

func (h *ClassHash) Felt() Felt {
	return Felt(*h)
}

func (h *ClassHash) Bytes() [32]byte {
	return (*Felt)(h).Bytes()
}

func (h *ClassHash) String() string {
	return (*Felt)(h).String()
}

func (h *ClassHash) IsZero() bool {
	return (*Felt)(h).IsZero()
}

func (h *ClassHash) Equal(b *ClassHash) bool {
	return (*Felt)(h).Equal((*Felt)(b))
}

func (h *ClassHash) MarshalJSON() ([]byte, error) {
	return (*Felt)(h).MarshalJSON()
}

func (h *ClassHash) UnmarshalJSON(data []byte) error {
	return (*Felt)(h).UnmarshalJSON(data)
}

// CompiledClassHash is the content identifier of the compiled (casm) form of a sierra class.
type CompiledClassHash Felt

func (h *CompiledClassHash) Felt() Felt {
	return Felt(*h)
}

func (h *CompiledClassHash) String() string {
	return (*Felt)(h).String()
}

func (h *CompiledClassHash) IsZero() bool {
	return (*Felt)(h).IsZero()
}

func (h *CompiledClassHash) Equal(b *CompiledClassHash) bool {
	return (*Felt)(h).Equal((*Felt)(b))
}
