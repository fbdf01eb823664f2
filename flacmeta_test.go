package flacmeta

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func blockHeader(isLast bool, typ uint8, length int) []byte {
	b0 := typ & 0x7F
	if isLast {
		b0 |= 0x80
	}
	return []byte{b0, byte(length >> 16), byte(length >> 8), byte(length)}
}

func streamInfoBody(sampleRate uint32, channels, bits uint8, nSamples uint64) []byte {
	body := make([]byte, 34)
	binary.BigEndian.PutUint16(body[0:2], 4096)
	binary.BigEndian.PutUint16(body[2:4], 4096)
	// min/max frame size left zero (unknown)
	packed := uint64(sampleRate)<<44 | uint64(channels-1)<<41 | uint64(bits-1)<<36 | (nSamples & 0xFFFFFFFFF)
	binary.BigEndian.PutUint64(body[10:18], packed)
	// MD5sum left zero
	return body
}

func writeTempFlac(t *testing.T, chain []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.flac")
	data := append([]byte(Signature), chain...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpen_NotAFlacFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ogg")
	if err := os.WriteFile(path, []byte("oggS\x00\x00\x00\x00"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = d.Load()
	if errors.Cause(err) != ErrNotAFlacFile {
		t.Fatalf("Load() error = %v, want ErrNotAFlacFile", err)
	}
}

func TestLoad_MinimalValidChain(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	chain := append(blockHeader(true, 0, len(si)), si...)
	path := writeTempFlac(t, chain)

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if md.StreamInfo().SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", md.StreamInfo().SampleRate)
	}
	if md.StreamInfo().MD5Hex() != "00000000000000000000000000000000" {
		t.Errorf("MD5Hex = %q", md.StreamInfo().MD5Hex())
	}
}

func TestLoad_Idempotent(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	chain := append(blockHeader(true, 0, len(si)), si...)
	path := writeTempFlac(t, chain)

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md1, err1 := d.Load()
	md2, err2 := d.Load()
	if md1 != md2 {
		t.Error("Load() returned different Metadata pointers across calls")
	}
	if err1 != err2 {
		t.Error("Load() returned different errors across calls")
	}
}

func TestLoad_MissingStreamInfo(t *testing.T) {
	chain := blockHeader(true, 1, 0) // PADDING only, zero length, marked last
	path := writeTempFlac(t, chain)

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = d.Load()
	if errors.Cause(err) != ErrMissingStreamInfo {
		t.Fatalf("Load() error = %v, want ErrMissingStreamInfo", err)
	}
}

func TestLoad_DuplicateBlock(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	var chain []byte
	chain = append(chain, blockHeader(false, 0, len(si))...)
	chain = append(chain, si...)
	chain = append(chain, blockHeader(true, 0, len(si))...)
	chain = append(chain, si...)
	path := writeTempFlac(t, chain)

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = d.Load()
	if errors.Cause(err) != ErrDuplicateBlock {
		t.Fatalf("Load() error = %v, want ErrDuplicateBlock", err)
	}
}

func TestLoad_UnterminatedChain(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	chain := append(blockHeader(false, 0, len(si)), si...) // never marks IsLast
	path := writeTempFlac(t, chain)

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = d.Load()
	if errors.Cause(err) != ErrUnterminatedChain {
		t.Fatalf("Load() error = %v, want ErrUnterminatedChain", err)
	}
}

type capturingDiagnostics struct {
	warnings []string
}

func (c *capturingDiagnostics) Warnf(format string, args ...interface{}) {
	c.warnings = append(c.warnings, format)
}

func TestLoad_ReservedBlockTypeWarnsAndContinues(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	var chain []byte
	chain = append(chain, blockHeader(false, 10, 3)...) // reserved type
	chain = append(chain, []byte{0xAA, 0xBB, 0xCC}...)
	chain = append(chain, blockHeader(true, 0, len(si))...)
	chain = append(chain, si...)
	path := writeTempFlac(t, chain)

	sink := &capturingDiagnostics{}
	d, err := Open(path, WithDiagnostics(sink))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if md.StreamInfo() == nil {
		t.Fatal("expected STREAMINFO to still be decoded after a reserved block")
	}
	if len(sink.warnings) != 1 {
		t.Fatalf("want 1 warning, got %d", len(sink.warnings))
	}
}

func TestLoad_TagsOnlySkipsNonTagBlocks(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	app := append([]byte("TEST"), []byte{1, 2, 3, 4}...) // 4-byte id + 4 bytes data
	var chain []byte
	chain = append(chain, blockHeader(false, 0, len(si))...)
	chain = append(chain, si...)
	chain = append(chain, blockHeader(true, 2, len(app))...)
	chain = append(chain, app...)
	path := writeTempFlac(t, chain)

	d, err := Open(path, WithTagsOnly(true))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(md.Applications()) != 0 {
		t.Errorf("expected APPLICATION block to be skipped under WithTagsOnly, got %d", len(md.Applications()))
	}
}

func vorbisCommentBody(vendor string, fields []string) []byte {
	var body []byte
	lenPrefixed := func(s string) {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		body = append(body, lenBuf[:]...)
		body = append(body, s...)
	}
	lenPrefixed(vendor)
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(fields)))
	body = append(body, countBuf[:]...)
	for _, f := range fields {
		lenPrefixed(f)
	}
	return body
}

func TestLoad_WithIgnoreDuplicates(t *testing.T) {
	si := streamInfoBody(44100, 2, 16, 0)
	vc := vorbisCommentBody("vendor", []string{"GENRE=Rock", "GENRE=Rock", "GENRE=Pop"})
	var chain []byte
	chain = append(chain, blockHeader(false, 0, len(si))...)
	chain = append(chain, si...)
	chain = append(chain, blockHeader(true, 4, len(vc))...)
	chain = append(chain, vc...)
	path := writeTempFlac(t, chain)

	d, err := Open(path, WithIgnoreDuplicates(true))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md, err := d.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, _ := md.VorbisComment()
	want := []string{"Rock", "Pop"}
	if len(got.Fields["GENRE"]) != len(want) {
		t.Fatalf("GENRE = %v, want %v", got.Fields["GENRE"], want)
	}
	for i, v := range want {
		if got.Fields["GENRE"][i] != v {
			t.Errorf("GENRE[%d] = %q, want %q", i, got.Fields["GENRE"][i], v)
		}
	}

	d2, err := Open(path, WithIgnoreDuplicates(false))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	md2, err := d2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got2, _ := md2.VorbisComment()
	if len(got2.Fields["GENRE"]) != 3 {
		t.Errorf("GENRE with default KeepAll policy = %v, want 3 entries", got2.Fields["GENRE"])
	}
}
