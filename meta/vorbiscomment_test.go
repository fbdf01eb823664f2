package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVorbisComment(vendor string, fields []string) []byte {
	b := newBuf()
	b.lenPrefixedLE(vendor)
	b.u32le(uint32(len(fields)))
	for _, f := range fields {
		b.lenPrefixedLE(f)
	}
	return b.Bytes()
}

func TestDecodeVorbisComment_CaseInsensitiveKeysKeepAll(t *testing.T) {
	body := buildVorbisComment("libFLAC 1.3.2", []string{"TITLE=Hello", "title=World"})
	vc, err := DecodeVorbisComment(NewCursor(newReaderOf(body)), KeepAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World"}, vc.Fields["TITLE"])
	_, hasLower := vc.Fields["title"]
	assert.False(t, hasLower, "lowercase key must not be present")
	assert.Equal(t, 2, vc.NFields)
}

func TestDecodeVorbisComment_FirstWinsDedup(t *testing.T) {
	body := buildVorbisComment("vendor", []string{"GENRE=Rock", "GENRE=Rock", "GENRE=Pop"})
	vc, err := DecodeVorbisComment(NewCursor(newReaderOf(body)), FirstWins)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rock", "Pop"}, vc.Fields["GENRE"])
	assert.Equal(t, 3, vc.NFields, "NFields counts every field read, regardless of dedup policy")
}

func TestDecodeVorbisComment_Empty(t *testing.T) {
	body := buildVorbisComment("vendor", nil)
	vc, err := DecodeVorbisComment(NewCursor(newReaderOf(body)), KeepAll)
	require.NoError(t, err)
	assert.Empty(t, vc.Fields)
}

func TestDecodeVorbisComment_MalformedField(t *testing.T) {
	body := buildVorbisComment("vendor", []string{"NOEQUALSSIGN"})
	_, err := DecodeVorbisComment(NewCursor(newReaderOf(body)), KeepAll)
	require.Error(t, err)
}

func TestVorbisComment_DateFallsBackToYear(t *testing.T) {
	vc := &VorbisComment{Fields: map[string][]string{"YEAR": {"2012"}}}
	assert.Equal(t, []string{"2012"}, vc.Date())

	vc2 := &VorbisComment{Fields: map[string][]string{"DATE": {"2020"}, "YEAR": {"2012"}}}
	assert.Equal(t, []string{"2020"}, vc2.Date())
}
