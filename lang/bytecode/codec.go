package bytecode

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
)

// Encode writes p to w in the toolchain's program file format. The format is
// a gob-encoded Program; the byte format is implementation-defined (§6) but
// Encode/Decode are each other's exact inverse, which is the only contract
// the compiler and runner collaborators need to share.
func Encode(w io.Writer, p *Program) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("bytecode: refusing to encode invalid program: %w", err)
	}
	enc := gob.NewEncoder(w)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("bytecode: encode program: %w", err)
	}
	return nil
}

// Decode reads a program previously written by Encode.
func Decode(r io.Reader) (*Program, error) {
	var p Program
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("bytecode: decode program: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("bytecode: decoded program is invalid: %w", err)
	}
	return &p, nil
}

// Marshal and Unmarshal are convenience wrappers around Encode/Decode for
// callers that want a byte slice rather than a stream (e.g. tests).
func Marshal(p *Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*Program, error) {
	return Decode(bytes.NewReader(data))
}
