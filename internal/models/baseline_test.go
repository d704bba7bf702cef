package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineCodec_RoundTrip(t *testing.T) {
	in := Baseline{
		Followed:  true,
		Count:     12345,
		FetchedAt: time.Unix(0, 1756400000000000000),
	}

	out, err := DecodeBaseline(EncodeBaseline(in))
	require.NoError(t, err)
	assert.Equal(t, in.Followed, out.Followed)
	assert.Equal(t, in.Count, out.Count)
	assert.True(t, in.FetchedAt.Equal(out.FetchedAt))
}

func TestBaselineCodec_NotFollowed(t *testing.T) {
	out, err := DecodeBaseline(EncodeBaseline(Baseline{Count: 0, FetchedAt: time.Unix(0, 0)}))
	require.NoError(t, err)
	assert.False(t, out.Followed)
	assert.Equal(t, 0, out.Count)
}

func TestBaselineCodec_FixedSize(t *testing.T) {
	data := EncodeBaseline(Baseline{Followed: true, Count: 1, FetchedAt: time.Now()})
	assert.Len(t, data, 13)
}

func TestDecodeBaseline_Truncated(t *testing.T) {
	data := EncodeBaseline(Baseline{Followed: true, Count: 1, FetchedAt: time.Now()})

	for _, n := range []int{0, 1, 5, 12} {
		_, err := DecodeBaseline(data[:n])
		assert.Error(t, err, "decoding %d bytes should fail", n)
	}
}
