package decode_test

import (
	"bytes"
	"testing"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

// a tiny "archive" format: certain iff the source starts with "ARC1".
func archiveDecoder(id string, certain bool) decode.Decoder[string] {
	return decode.Decoder[string]{
		ID: id,
		Detect: func(f *bytesource.FileData) decode.Confidence {
			if f.StartsWith([]byte("ARC1")) {
				if certain {
					return decode.Certain
				}
				return decode.Possible
			}
			return decode.Impossible
		},
		DecodeFn: func(f *bytesource.FileData) (string, error) {
			return "archive:" + id, nil
		},
	}
}

// a tiny "compression" codec: possible for anything starting with "CMP1",
// and its decode just strips the 4-byte tag, producing more raw bytes.
func stripTagCodec(id string, tag string) decode.Decoder[*bytesource.FileData] {
	return decode.Decoder[*bytesource.FileData]{
		ID: id,
		Detect: func(f *bytesource.FileData) decode.Confidence {
			if f.StartsWith([]byte(tag)) {
				return decode.Possible
			}
			return decode.Impossible
		},
		DecodeFn: func(f *bytesource.FileData) (*bytesource.FileData, error) {
			return f.Subfile(int64(len(tag)), f.Len()-int64(len(tag)))
		},
	}
}

func TestAutoDecodeStepPrefersCertainOverPossible(t *testing.T) {
	archiveReg := decode.NewRegistry("archive")
	decode.Register(archiveReg, archiveDecoder("certain-arc", true))

	compReg := decode.NewRegistry("compression")
	decode.Register(compReg, stripTagCodec("strip-arc1", "ARC1"))

	f := bytesource.NewMemory([]byte("ARC1payload"))

	id, out, err := decode.AutoDecodeStep(f, "", "", decode.Registries{
		Archive:     archiveReg,
		Compression: compReg,
	})
	if err != nil {
		t.Fatalf("AutoDecodeStep: %v", err)
	}
	if id != "certain-arc" {
		t.Fatalf("id = %q, want certain-arc", id)
	}
	if out.Kind != decode.KindArchive {
		t.Fatalf("Kind = %v, want KindArchive", out.Kind)
	}
}

func TestAutoDecodeFullLoopsThroughCompressionThenArchive(t *testing.T) {
	archiveReg := decode.NewRegistry("archive")
	decode.Register(archiveReg, archiveDecoder("arc", true))

	compReg := decode.NewRegistry("compression")
	decode.Register(compReg, stripTagCodec("strip-cmp1", "CMP1"))

	f := bytesource.NewMemory([]byte("CMP1ARC1payload"))

	res := decode.AutoDecodeFull(f, "", decode.Registries{
		Archive:     archiveReg,
		Compression: compReg,
	})

	if res.ErrMsg != "" {
		t.Fatalf("ErrMsg = %q, want empty", res.ErrMsg)
	}
	if len(res.Steps) != 2 || res.Steps[0] != "strip-cmp1" || res.Steps[1] != "arc" {
		t.Fatalf("Steps = %v, want [strip-cmp1 arc]", res.Steps)
	}
	if res.Out.Kind != decode.KindArchive {
		t.Fatalf("Out.Kind = %v, want KindArchive", res.Out.Kind)
	}
	if res.Out.Value.(string) != "archive:arc" {
		t.Fatalf("Out.Value = %v, want archive:arc", res.Out.Value)
	}
}

func TestAutoDecodeStepDisallowsImmediateSelfReuse(t *testing.T) {
	// A codec that strips one byte at a time would loop forever without the
	// disallow guard; disallowing its own id for exactly the next step is
	// enough to force a different decoder (or failure) to take over.
	compReg := decode.NewRegistry("compression")
	decode.Register(compReg, decode.Decoder[*bytesource.FileData]{
		ID: "peel",
		Detect: func(f *bytesource.FileData) decode.Confidence {
			if f.Len() > 0 {
				return decode.Possible
			}
			return decode.Impossible
		},
		DecodeFn: func(f *bytesource.FileData) (*bytesource.FileData, error) {
			return f.Subfile(1, f.Len()-1)
		},
	})

	f := bytesource.NewMemory([]byte("xy"))
	res := decode.AutoDecodeFull(f, "", decode.Registries{Compression: compReg})

	if res.ErrMsg == "" {
		t.Fatalf("expected a stall once peel is disallowed on the second step, got steps=%v", res.Steps)
	}
	if len(res.Steps) != 1 || res.Steps[0] != "peel" {
		t.Fatalf("Steps = %v, want exactly one application of peel", res.Steps)
	}
}

func TestAutoDecodeStepSkipsPossibleArchiveInsideArchive(t *testing.T) {
	archiveReg := decode.NewRegistry("archive")
	decode.Register(archiveReg, archiveDecoder("heuristic-arc", false))

	f := bytesource.NewMemory([]byte("ARC1leaf"))

	_, _, err := decode.AutoDecodeStep(f, "", "outer-archive", decode.Registries{Archive: archiveReg})
	if err == nil {
		t.Fatalf("expected no match: a leaf entry inside an archive must not be reinterpreted as another archive heuristically")
	}
}

func TestRegistryIDsPreservesRegistrationOrder(t *testing.T) {
	r := decode.NewRegistry("archive")
	decode.Register(r, archiveDecoder("a", true))
	decode.Register(r, archiveDecoder("b", true))

	got := r.IDs()
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
}

func TestConfidenceString(t *testing.T) {
	cases := map[decode.Confidence]string{
		decode.Impossible: "impossible",
		decode.Possible:   "possible",
		decode.Certain:    "certain",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Fatalf("Confidence(%d).String() = %q, want %q", c, got, want)
		}
	}
}

func TestDynDataRawRoundTrip(t *testing.T) {
	f := bytesource.NewMemory([]byte("abc"))
	d := decode.DynData{Kind: decode.KindRaw, Raw: f}
	got, err := d.Raw.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, []byte("abc")) {
		t.Fatalf("Read() = %q, want abc", got)
	}
}
