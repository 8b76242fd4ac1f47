package archive_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/malucard/kidfile-go/archive"
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// buildAFS assembles the scenario from the spec: one entry named "A" at
// offset 2048, length 4, with a timestamp.
func buildAFS(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("AFS\x00")
	buf.Write(u32le(1))   // count
	buf.Write(u32le(2048)) // offset
	buf.Write(u32le(4))    // length

	// pad up to the data region
	buf.Write(make([]byte, 2048-buf.Len()))
	buf.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	// name/timestamp table aligned to next 2048 after data end (2052)
	buf.Write(make([]byte, 4096-buf.Len()))

	name := make([]byte, 32)
	copy(name, "A")
	buf.Write(name)
	buf.Write(u16le(2001))
	buf.Write(u16le(1))
	buf.Write(u16le(2))
	buf.Write(u16le(3))
	buf.Write(u16le(4))
	buf.Write(u16le(5))
	buf.Write(make([]byte, 4)) // pad record to 48 bytes

	return buf.Bytes()
}

func TestAFSDetectAndDecodeSingleEntry(t *testing.T) {
	raw := buildAFS(t)
	f := bytesource.NewMemory(raw)

	if c := archive.Registry.IDs(); len(c) == 0 {
		t.Fatalf("archive.Registry has no registered decoders")
	}

	a, e := decodeWithID(t, f, "afs")
	if e != nil {
		t.Fatalf("decode afs: %v", e)
	}

	if a.Format != "afs" {
		t.Fatalf("Format = %q, want afs", a.Format)
	}
	if len(a.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(a.Entries))
	}

	entry := a.Entries[0]
	if entry.Name != "A" {
		t.Fatalf("Name = %q, want A", entry.Name)
	}

	got, e := entry.Data.Read()
	if e != nil {
		t.Fatalf("entry.Data.Read: %v", e)
	}
	if !bytes.Equal(got, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Fatalf("entry data = %v, want DEADBEEF", got)
	}

	if entry.Timestamp == nil {
		t.Fatalf("Timestamp = nil, want present")
	}
	want := archive.Timestamp{Year: 2001, Month: 1, Day: 2, Hour: 3, Minute: 4, Second: 5}
	if *entry.Timestamp != want {
		t.Fatalf("Timestamp = %+v, want %+v", *entry.Timestamp, want)
	}
}

// decodeWithID finds the decoder with the given id in archive.Registry and
// runs it directly, bypassing the confidence-based orchestration - these
// tests are about one decoder's bit-level correctness, not orchestration.
func decodeWithID(t *testing.T, f *bytesource.FileData, id string) (*archive.Archive, error) {
	t.Helper()

	regs := decode.Registries{Archive: archive.Registry}
	decId, out, err := decode.AutoDecodeStep(f, "", "", regs)
	if err != nil {
		return nil, err
	}
	if decId != id {
		t.Fatalf("matched decoder %q, want %q", decId, id)
	}
	if out.Kind != decode.KindArchive {
		t.Fatalf("Kind = %v, want KindArchive", out.Kind)
	}
	return out.Value.(*archive.Archive), nil
}

func TestAFSRejectsImplausibleCount(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("AFS\x00")
	buf.Write(u32le(65535))

	f := bytesource.NewMemory(buf.Bytes())
	regs := decode.Registries{Archive: archive.Registry}
	if _, _, err := decode.AutoDecodeStep(f, "", "", regs); err == nil {
		t.Fatalf("expected detection to reject an implausible entry count")
	}
}
