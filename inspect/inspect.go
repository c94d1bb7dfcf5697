// Package inspect renders token buffers for debugging.
package inspect

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/segmentio/fasthash/fnv1a"

	"github.com/zephyrtronium/multicurvas"
)

// Bytecode returns the low byte of each token's type, in order.
func Bytecode(buf *multicurvas.TokenBuffer) []byte {
	n := buf.Len()
	r := make([]byte, n)
	for i := 0; i < n; i++ {
		r[i] = byte(buf.Token(i).Type & 0xff)
	}
	return r
}

// Hexdump writes data as hex bytes, 16 per line, each line prefixed with its
// offset.
func Hexdump(w io.Writer, data []byte) error {
	b := bufio.NewWriter(w)
	for i, c := range data {
		if i%16 == 0 {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(b, "%04X: ", i)
		}
		fmt.Fprintf(b, "%02X ", c)
	}
	if len(data) > 0 {
		b.WriteByte('\n')
	}
	return b.Flush()
}

// WriteTokens writes one line per token with its name and, for literals,
// its value.
func WriteTokens(w io.Writer, buf *multicurvas.TokenBuffer) error {
	b := bufio.NewWriter(w)
	if buf.Len() == 0 {
		b.WriteString("empty token buffer\n")
		return b.Flush()
	}
	fmt.Fprintf(b, "tokens (%d):\n", buf.Len())
	for i := 0; i < buf.Len(); i++ {
		tok := buf.Token(i)
		switch tok.Type {
		case multicurvas.Number:
			v, _ := buf.Value(tok)
			fmt.Fprintf(b, "[%2d] %-12s value=%.6g\n", i, tok.Type, v)
		case multicurvas.End:
			fmt.Fprintf(b, "[%2d] %s\n", i, tok.Type)
		default:
			fmt.Fprintf(b, "[%2d] %-12s (byte: %d)\n", i, tok.Type, tok.Type)
		}
	}
	return b.Flush()
}

// WriteBytecode writes the bytecode of buf, an interpretation of each byte,
// and a hexdump.
func WriteBytecode(w io.Writer, buf *multicurvas.TokenBuffer) error {
	if buf.Len() == 0 {
		_, err := io.WriteString(w, "empty token buffer\n")
		return err
	}
	code := Bytecode(buf)
	b := bufio.NewWriter(w)
	b.WriteString("bytes:")
	for _, c := range code {
		fmt.Fprintf(b, " %02X", c)
	}
	b.WriteString("\n\n")
	for i, c := range code {
		tok := buf.Token(i)
		fmt.Fprintf(b, "  [%d] 0x%02X = %3d  %s", i, c, c, tok.Type)
		if v, ok := buf.Value(tok); ok {
			fmt.Fprintf(b, " (value: %.6g)", v)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if err := b.Flush(); err != nil {
		return err
	}
	return Hexdump(w, code)
}

// Fingerprint hashes the token types and literal values of buf. Buffers
// compiled from the same text in the same locale have the same fingerprint.
func Fingerprint(buf *multicurvas.TokenBuffer) uint64 {
	h := fnv1a.Init64
	var scratch [8]byte
	for i := 0; i < buf.Len(); i++ {
		tok := buf.Token(i)
		binary.LittleEndian.PutUint16(scratch[:2], uint16(tok.Type))
		h = fnv1a.AddBytes64(h, scratch[:2])
		if v, ok := buf.Value(tok); ok {
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
			h = fnv1a.AddBytes64(h, scratch[:])
		}
	}
	return h
}
