package lbytes

import (
	"time"
)

const (
	// FiletimeEpochOffset is 1970-01-01 expressed in 100ns ticks since 1601-01-01.
	FiletimeEpochOffset    = 116444736000000000
	FiletimeTicksPerSecond = 10_000_000
)

func FiletimeToTime(ticks uint64) time.Time {
	delta := int64(ticks - FiletimeEpochOffset)
	seconds := delta / FiletimeTicksPerSecond
	remainder := delta % FiletimeTicksPerSecond
	return time.Unix(seconds, remainder*100).UTC()
}

// TimeToFiletime truncates t to 100ns precision.
func TimeToFiletime(t time.Time) uint64 {
	seconds := t.Unix()
	remainder := int64(t.Nanosecond()) / 100
	return uint64(seconds*FiletimeTicksPerSecond+remainder) + FiletimeEpochOffset
}

func (b *Reader) ReadFiletime() (time.Time, error) {
	ticks, err := ReadScalar[uint64](b, KindFiletime)
	if err != nil {
		return time.Time{}, err
	}
	return FiletimeToTime(ticks), nil
}
