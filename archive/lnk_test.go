package archive_test

import (
	"bytes"
	"testing"

	"github.com/malucard/kidfile-go/archive"
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

// buildLNK assembles one entry with the compressed flag set, per the spec
// scenario: raw_len = (realLen << 1) | 1.
func buildLNK(t *testing.T, name string, payload []byte, compressed bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("LNK\x00")
	buf.Write(u32le(1))
	buf.Write(make([]byte, 8)) // remaining header bytes up to 16

	raw := uint32(len(payload)) << 1
	if compressed {
		raw |= 1
	}

	buf.Write(u32le(0)) // offset, relative to data section start
	buf.Write(u32le(raw))

	nameBuf := make([]byte, 24)
	copy(nameBuf, name)
	buf.Write(nameBuf)

	buf.Write(payload)

	return buf.Bytes()
}

func TestLNKCompressedFlagSurfacesAsNeedsDecompress(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6}
	raw := buildLNK(t, "B", payload, true)
	f := bytesource.NewMemory(raw)

	regs := decode.Registries{Archive: archive.Registry}
	id, out, err := decode.AutoDecodeStep(f, "", "", regs)
	if err != nil {
		t.Fatalf("AutoDecodeStep: %v", err)
	}
	if id != "lnk" {
		t.Fatalf("id = %q, want lnk", id)
	}

	a := out.Value.(*archive.Archive)
	if len(a.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(a.Entries))
	}

	entry := a.Entries[0]
	if !entry.NeedsDecompress {
		t.Fatalf("NeedsDecompress = false, want true")
	}
	if entry.Data.Len() != int64(len(payload)) {
		t.Fatalf("Data.Len() = %d, want %d (raw_len >> 1)", entry.Data.Len(), len(payload))
	}

	got, e := entry.Data.Read()
	if e != nil {
		t.Fatalf("Read: %v", e)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Read() = %v, want %v", got, payload)
	}
}

func TestLNKUncompressedEntry(t *testing.T) {
	payload := []byte("plain")
	raw := buildLNK(t, "C", payload, false)
	f := bytesource.NewMemory(raw)

	regs := decode.Registries{Archive: archive.Registry}
	_, out, err := decode.AutoDecodeStep(f, "", "", regs)
	if err != nil {
		t.Fatalf("AutoDecodeStep: %v", err)
	}

	entry := out.Value.(*archive.Archive).Entries[0]
	if entry.NeedsDecompress {
		t.Fatalf("NeedsDecompress = true, want false")
	}
}
