package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []*Frame{
		NewSimpleString("OK"),
		NewError("ERR boom"),
		NewInteger(42),
		NewInteger(-7),
		NewBulkString([]byte("hello")),
		NewBulkString([]byte("")),
		NewBulkString([]byte("with\r\ncrlf\r\ninside")),
		NilBulkString(),
		NewArray(nil),
		NewArray([]*Frame{NewBulkString([]byte("a")), NewBulkString([]byte("b"))}),
	}

	for _, f := range cases {
		encoded := Encode(f)
		decoded, n, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode(%q) error: %v", encoded, err)
		}
		if n != len(encoded) {
			t.Fatalf("decode(%q) consumed %d, want %d", encoded, n, len(encoded))
		}
		if !bytes.Equal(Encode(decoded), encoded) {
			t.Fatalf("round trip mismatch: got %q want %q", Encode(decoded), encoded)
		}
	}
}

func TestDecodeNullBulkString(t *testing.T) {
	f, n, err := Decode([]byte("$-1\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Null || f.Type != TypeBulkString {
		t.Fatalf("expected null bulk string, got %+v", f)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes consumed, got %d", n)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	f, n, err := Decode([]byte("*0\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Type != TypeArray || f.Null || len(f.Array) != 0 {
		t.Fatalf("expected empty array, got %+v", f)
	}
	if n != 4 {
		t.Fatalf("expected 4 bytes consumed, got %d", n)
	}
}

func TestDecodeIncomplete(t *testing.T) {
	full := Encode(NewArray([]*Frame{NewBulkString([]byte("SET")), NewBulkString([]byte("foo"))}))
	for i := 0; i < len(full); i++ {
		_, _, err := Decode(full[:i])
		if err != ErrIncomplete {
			t.Fatalf("at prefix len %d: expected ErrIncomplete, got %v", i, err)
		}
	}
	_, n, err := Decode(full)
	if err != nil {
		t.Fatalf("unexpected error decoding full buffer: %v", err)
	}
	if n != len(full) {
		t.Fatalf("expected to consume entire buffer, got %d of %d", n, len(full))
	}
}

func TestDecodeSlidesExactBytes(t *testing.T) {
	one := Encode(NewSimpleString("OK"))
	two := Encode(NewInteger(7))
	buf := append(append([]byte{}, one...), two...)

	_, n1, err := Decode(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n1 != len(one) {
		t.Fatalf("expected to consume %d bytes, got %d", len(one), n1)
	}
	f2, n2, err := Decode(buf[n1:])
	if err != nil {
		t.Fatalf("unexpected error decoding second frame: %v", err)
	}
	if n2 != len(two) || f2.Int != 7 {
		t.Fatalf("unexpected second frame: %+v consumed=%d", f2, n2)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := [][]byte{
		[]byte("#foo\r\n"),
		[]byte("$abc\r\n"),
		[]byte("*abc\r\n"),
		[]byte("$3\r\nabXX"),
	}
	for _, c := range cases {
		_, _, err := Decode(c)
		if err == nil || err == ErrIncomplete {
			t.Fatalf("expected malformed error for %q, got %v", c, err)
		}
	}
}

func TestStringArgs(t *testing.T) {
	f := NewCommandArray([]byte("SET"), []byte("foo"), []byte("bar"))
	args, err := f.StringArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]byte{[]byte("SET"), []byte("foo"), []byte("bar")}
	for i, w := range want {
		if !bytes.Equal(args[i], w) {
			t.Fatalf("arg %d: got %q want %q", i, args[i], w)
		}
	}
}
