package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

var byteOrder = binary.LittleEndian

// Baseline is the last server-supplied (flag, count) pair for a streamer,
// cached between fetches so overlay resolution has something to fall back on.
type Baseline struct {
	Followed  bool
	Count     int
	FetchedAt time.Time
}

// EncodeBaseline writes a Baseline in a compact binary format:
// flag(uint8) count(int32) fetchedAt(int64, unix nanoseconds).
func EncodeBaseline(b Baseline) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 13))

	flag := uint8(0)
	if b.Followed {
		flag = 1
	}
	_ = binary.Write(buf, byteOrder, flag)
	_ = binary.Write(buf, byteOrder, int32(b.Count))
	_ = binary.Write(buf, byteOrder, b.FetchedAt.UnixNano())

	return buf.Bytes()
}

// DecodeBaseline reads a Baseline written by EncodeBaseline.
func DecodeBaseline(data []byte) (Baseline, error) {
	r := bytes.NewReader(data)

	var flag uint8
	var count int32
	var nanos int64
	if err := binary.Read(r, byteOrder, &flag); err != nil {
		return Baseline{}, fmt.Errorf("baseline flag: %w", err)
	}
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return Baseline{}, fmt.Errorf("baseline count: %w", err)
	}
	if err := binary.Read(r, byteOrder, &nanos); err != nil {
		return Baseline{}, fmt.Errorf("baseline fetchedAt: %w", err)
	}

	return Baseline{
		Followed:  flag == 1,
		Count:     int(count),
		FetchedAt: time.Unix(0, nanos),
	}, nil
}
