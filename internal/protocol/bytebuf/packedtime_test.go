package bytebuf

import (
	"testing"
	"time"

	"github.com/danmuck/wirebuf/internal/testutil/testlog"
)

func TestPackTimeLayout(t *testing.T) {
	testlog.Start(t)
	ts := time.Date(2024, time.March, 15, 13, 47, 59, 0, time.UTC)
	want := uint32(24)<<24 | uint32(2)<<20 | uint32(14)<<14 | uint32(13)<<6 | uint32(47)
	if got := PackTime(ts); got != want {
		t.Fatalf("got %#x want %#x", got, want)
	}
}

func TestPackedTimeRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := time.Date(2019, time.December, 31, 22, 5, 0, 0, time.Local)
	b := New()
	b.WritePackedTime(in)
	if b.Size() != 4 {
		t.Fatalf("expected 4 bytes, got %d", b.Size())
	}
	out, err := b.ReadPackedTime()
	if err != nil {
		t.Fatalf("read packed time: %v", err)
	}
	if out.Year() != in.Year() || out.Month() != in.Month() || out.Day() != in.Day() ||
		out.Hour() != in.Hour() || out.Minute() != in.Minute() {
		t.Fatalf("round trip mismatch: got %v want %v", out, in)
	}
}

// Weekday round-trip is not guaranteed by the wire word: the encoder leaves
// bits 11..13 clear and the decoder derives the weekday from the date.
func TestPackedTimeWeekdayNotEncoded(t *testing.T) {
	testlog.Start(t)
	ts := time.Date(2025, time.July, 4, 9, 30, 0, 0, time.UTC)
	v := PackTime(ts)
	if v&(0x7<<11) != 0 {
		t.Fatalf("weekday bits should be clear, got %#x", v)
	}
	forged := v | 0x7<<11
	out := UnpackTime(forged, time.UTC)
	if out.Weekday() != ts.Weekday() {
		t.Fatalf("weekday should be derived from the date, got %v want %v", out.Weekday(), ts.Weekday())
	}
}

func TestReadPackedTimeTruncated(t *testing.T) {
	testlog.Start(t)
	b := FromBytes([]byte{1, 2, 3})
	if _, err := b.ReadPackedTime(); err == nil {
		t.Fatalf("expected error on truncated packed time")
	}
}
