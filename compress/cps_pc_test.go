package compress_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/compress"
	"github.com/malucard/kidfile-go/decode"
)

// TestCPSPCPassthroughRoundTrip builds a CPS\0-tagged header wrapping two
// obfuscated plain words with compression_type 0 (no token machine, the
// deobfuscated body passes straight through) and checks it round-trips via
// the registry end to end.
func TestCPSPCPassthroughRoundTrip(t *testing.T) {
	const keyOffBias = 0x7534682
	const keySeedBias = 0x3786425
	const lcgMul = 1103515245
	const lcgAdd = 39686

	plain := []uint32{0x11111111, 0x22222222}
	body := make([]byte, (len(plain)+1)*4)

	keyOff := int64(len(plain) * 4)
	keyOffRaw := uint32(keyOff) + keyOffBias
	binary.LittleEndian.PutUint32(body[keyOff:keyOff+4], keyOffRaw)

	key := keyOffRaw + uint32(keyOff) + keySeedBias
	for i, p := range plain {
		off := i * 4
		word := p + key + uint32(len(body))
		binary.LittleEndian.PutUint32(body[off:off+4], word)
		key = key*lcgMul + lcgAdd
	}

	var raw bytes.Buffer
	raw.WriteString("CPS\x00")
	packedSize := make([]byte, 4)
	binary.LittleEndian.PutUint32(packedSize, uint32(len(body)))
	raw.Write(packedSize)
	raw.Write([]byte{0, 0}) // reserved
	raw.Write([]byte{0, 0}) // compression_type = 0, no token machine
	unpackedSize := make([]byte, 4)
	binary.LittleEndian.PutUint32(unpackedSize, uint32(len(plain)*4))
	raw.Write(unpackedSize)
	raw.Write(body)

	f := bytesource.NewMemory(raw.Bytes())
	regs := decode.Registries{Compression: compress.Registry}
	id, out, err := decode.AutoDecodeStep(f, "", "", regs)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if id != "cps-pc" {
		t.Fatalf("matched decoder %q, want cps-pc", id)
	}

	got, e := out.Raw.Read()
	if e != nil {
		t.Fatalf("read decoded: %v", e)
	}
	if binary.LittleEndian.Uint32(got[0:4]) != plain[0] {
		t.Fatalf("word 0 = %#x, want %#x", binary.LittleEndian.Uint32(got[0:4]), plain[0])
	}
	if binary.LittleEndian.Uint32(got[4:8]) != plain[1] {
		t.Fatalf("word 1 = %#x, want %#x", binary.LittleEndian.Uint32(got[4:8]), plain[1])
	}
}

func TestCPSPCRejectsMissingMagic(t *testing.T) {
	raw := make([]byte, 16)
	copy(raw, "XYZ\x00")

	f := bytesource.NewMemory(raw)
	regs := decode.Registries{Compression: compress.Registry}
	_, _, err := decode.AutoDecodeStep(f, "", "", regs)
	if err == nil {
		t.Fatalf("expected no decoder to match a non-CPS-PC header")
	}
}
