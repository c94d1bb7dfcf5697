package inspect_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zephyrtronium/multicurvas"
	"github.com/zephyrtronium/multicurvas/inspect"
)

func compile(t *testing.T, src string, loc multicurvas.Locale) *multicurvas.TokenBuffer {
	t.Helper()
	rpn, err := multicurvas.Compile(src, loc)
	if err != nil {
		t.Fatal(err)
	}
	return rpn
}

func TestBytecode(t *testing.T) {
	rpn := compile(t, "sin(x)*2", multicurvas.Point)
	want := []byte{129, 160, 128, '*', 255}
	if got := inspect.Bytecode(rpn); !bytes.Equal(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
	if got := inspect.Bytecode(nil); len(got) != 0 {
		t.Errorf("nil buffer gave %v", got)
	}
}

func TestHexdump(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, ""},
		{"short", []byte{0x81, 0xff}, "0000: 81 FF \n"},
		{
			"wrap",
			[]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
			"0000: 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F \n0010: 10 11 \n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b strings.Builder
			if err := inspect.Hexdump(&b, c.data); err != nil {
				t.Fatal(err)
			}
			if b.String() != c.want {
				t.Errorf("want %q, got %q", c.want, b.String())
			}
		})
	}
}

func TestWriteTokens(t *testing.T) {
	buf, err := multicurvas.Tokenize("2.5*theta", multicurvas.Point)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := inspect.WriteTokens(&b, buf); err != nil {
		t.Fatal(err)
	}
	want := "tokens (4):\n" +
		"[ 0] NUMBER       value=2.5\n" +
		"[ 1] *            (byte: 42)\n" +
		"[ 2] theta        (byte: 130)\n" +
		"[ 3] END\n"
	if b.String() != want {
		t.Errorf("want\n%s\ngot\n%s", want, b.String())
	}
	b.Reset()
	buf.Release()
	if err := inspect.WriteTokens(&b, buf); err != nil {
		t.Fatal(err)
	}
	if b.String() != "empty token buffer\n" {
		t.Errorf("released buffer: %q", b.String())
	}
}

func TestWriteBytecode(t *testing.T) {
	rpn := compile(t, "x+1", multicurvas.Point)
	var b strings.Builder
	if err := inspect.WriteBytecode(&b, rpn); err != nil {
		t.Fatal(err)
	}
	want := "bytes: 81 80 2B FF\n\n" +
		"  [0] 0x81 = 129  x\n" +
		"  [1] 0x80 = 128  NUMBER (value: 1)\n" +
		"  [2] 0x2B =  43  +\n" +
		"  [3] 0xFF = 255  END\n\n" +
		"0000: 81 80 2B FF \n"
	if b.String() != want {
		t.Errorf("want\n%s\ngot\n%s", want, b.String())
	}
}

func TestFingerprint(t *testing.T) {
	a := compile(t, "sin(x)*2.5 + x^2", multicurvas.Point)
	b := compile(t, "sin(x)*2.5 + x^2", multicurvas.Point)
	c := compile(t, "sin(x)*2,5 + x^2", multicurvas.Comma)
	d := compile(t, "sin(x)*2.5 + x^3", multicurvas.Point)
	e := compile(t, "sin(t)*2.5 + t^2", multicurvas.Point)
	if inspect.Fingerprint(a) != inspect.Fingerprint(b) {
		t.Error("same text gave different fingerprints")
	}
	if inspect.Fingerprint(a) != inspect.Fingerprint(c) {
		t.Error("locales gave different fingerprints")
	}
	if inspect.Fingerprint(a) == inspect.Fingerprint(d) {
		t.Error("different literal gave the same fingerprint")
	}
	if inspect.Fingerprint(a) == inspect.Fingerprint(e) {
		t.Error("different variable gave the same fingerprint")
	}
}
