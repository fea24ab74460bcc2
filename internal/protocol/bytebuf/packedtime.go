package bytebuf

import "time"

// Packed time bit layout, least significant first. Bits 11..13 carry no
// value on encode and are ignored on decode; weekday is derived.
const (
	packedMinuteShift = 0
	packedHourShift   = 6
	packedDayShift    = 14
	packedMonthShift  = 20
	packedYearShift   = 24

	packedMinuteMask = 0x3F
	packedHourMask   = 0x1F
	packedDayMask    = 0x3F
	packedMonthMask  = 0x0F
	packedYearMask   = 0x1F

	packedYearBase = 2000
)

// PackTime packs t's own calendar fields into the 32-bit wire layout.
func PackTime(t time.Time) uint32 {
	year := uint32(t.Year()-packedYearBase) & packedYearMask
	month := uint32(int(t.Month())-1) & packedMonthMask
	day := uint32(t.Day()-1) & packedDayMask
	hour := uint32(t.Hour()) & packedHourMask
	minute := uint32(t.Minute()) & packedMinuteMask
	return year<<packedYearShift |
		month<<packedMonthShift |
		day<<packedDayShift |
		hour<<packedHourShift |
		minute<<packedMinuteShift
}

// UnpackTime expands a packed word into a time in loc. Out of range fields
// are normalized the way time.Date normalizes them.
func UnpackTime(v uint32, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	minute := int(v>>packedMinuteShift) & packedMinuteMask
	hour := int(v>>packedHourShift) & packedHourMask
	day := int(v>>packedDayShift)&packedDayMask + 1
	month := time.Month(int(v>>packedMonthShift)&packedMonthMask + 1)
	year := int(v>>packedYearShift)&packedYearMask + packedYearBase
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// WritePackedTime converts t to local time and writes it packed.
func (b *Buffer) WritePackedTime(t time.Time) {
	b.WriteUint32(PackTime(t.Local()))
}

// ReadPackedTime reads a packed word as a local time.
func (b *Buffer) ReadPackedTime() (time.Time, error) {
	v, err := b.ReadUint32()
	if err != nil {
		return time.Time{}, err
	}
	return UnpackTime(v, time.Local), nil
}
