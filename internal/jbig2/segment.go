package jbig2

import "encoding/binary"

// Segment type tags used by the segments this encoder ever emits (Annex
// D.2, Table D.1). The decode-only tags (refinement, pattern dict,
// halftone, tables) never appear on the write side and are not named here.
const (
	segmentTypeSymbolDict            = 0
	segmentTypeTextRegionImmediate   = 6
	segmentTypeTextRegionImmLossless = 7
	segmentTypeGenericRegionImm      = 38
	segmentTypeGenericRegionImmLL    = 39
	segmentTypePageInfo              = 48
	segmentTypeEndOfPage             = 49
	segmentTypeEndOfFile             = 51
)

// SegmentFlags mirrors the bit-level layout of the segment header flag
// byte (Annex 7.2.3).
type SegmentFlags uint8

const (
	segmentFlagTypeMask              = 0x3f
	segmentFlagPageAssociationSize   = 0x40
	segmentFlagDeferredNonRetainMask = 0x80
)

// Type returns the 6-bit segment type identifier.
func (f SegmentFlags) Type() uint8 { return uint8(f) & segmentFlagTypeMask }

// HasLongPageAssociation reports whether the page association field is 4
// bytes instead of 1.
func (f SegmentFlags) HasLongPageAssociation() bool {
	return f&segmentFlagPageAssociationSize != 0
}

// WithType returns a copy of f with the type bits replaced.
func (f SegmentFlags) WithType(t uint8) SegmentFlags {
	return (f &^ segmentFlagTypeMask) | SegmentFlags(t&segmentFlagTypeMask)
}

// WithLongPageAssociation toggles the long page association bit.
func (f SegmentFlags) WithLongPageAssociation(long bool) SegmentFlags {
	if long {
		return f | segmentFlagPageAssociationSize
	}
	return f &^ segmentFlagPageAssociationSize
}

// Segment is a write-side JBIG2 segment: it owns its own referred-to list
// and payload, and knows how to size and serialise its own header, mirroring
// the multi-page encoder's Segment class rather than the older
// parse-in-place struct this package used to carry.
type Segment struct {
	Number          uint32
	Type            uint8
	PageAssociation uint32
	Referred        []uint32
	Data            []byte
}

// NewSegment returns a segment of the given type and number with no
// referred-to segments and no payload yet.
func NewSegment(number uint32, typ uint8, page uint32) *Segment {
	return &Segment{Number: number, Type: typ, PageAssociation: page}
}

// referredFieldWidth returns how many bytes each referred-to segment
// number occupies, per Annex 7.2.5: 1 byte if this segment's own number is
// at most 256, 2 bytes if at most 65536, 4 bytes otherwise.
func (s *Segment) referredFieldWidth() int {
	switch {
	case s.Number <= 256:
		return 1
	case s.Number <= 65536:
		return 2
	default:
		return 4
	}
}

// HeaderSize returns the number of bytes WriteHeader will emit.
func (s *Segment) HeaderSize() int {
	size := 6 // number(4) + flags(1) + referred-count-and-retain(1, short form)
	if refCount := len(s.Referred); refCount > 4 {
		retainBytes := (refCount + 8) / 8
		size += 4 + retainBytes - 1 // long-form count/retain field replaces the short-form byte
	}
	size += len(s.Referred) * s.referredFieldWidth()
	if s.PageAssociation > 255 {
		size += 4
	} else {
		size += 1
	}
	size += 4 // data length field
	return size
}

// Size returns the total on-wire size of the segment: header plus payload.
func (s *Segment) Size() int { return s.HeaderSize() + len(s.Data) }

// WriteHeader appends this segment's header to dst and returns the result,
// per Annex 7.2.
func (s *Segment) WriteHeader(dst []byte) []byte {
	dst = appendUint32(dst, s.Number)

	flags := SegmentFlags(0).WithType(s.Type)
	longPage := s.PageAssociation > 255
	flags = flags.WithLongPageAssociation(longPage)
	dst = append(dst, byte(flags))

	refCount := len(s.Referred)
	if refCount <= 4 {
		// Short form: top 3 bits are the count, retain bits fill the rest.
		dst = append(dst, byte(refCount<<5))
	} else {
		// Long form: top 3 bits all set, count in the low 29 bits.
		header := uint32(refCount) | 0xE0000000
		dst = appendUint32(dst, header)
		retainBytes := (refCount + 8) / 8
		for i := 0; i < retainBytes; i++ {
			dst = append(dst, 0)
		}
	}

	width := s.referredFieldWidth()
	for _, ref := range s.Referred {
		switch width {
		case 1:
			dst = append(dst, byte(ref))
		case 2:
			dst = appendUint16(dst, uint16(ref))
		default:
			dst = appendUint32(dst, ref)
		}
	}

	if longPage {
		dst = appendUint32(dst, s.PageAssociation)
	} else {
		dst = append(dst, byte(s.PageAssociation))
	}

	dst = appendUint32(dst, uint32(len(s.Data)))
	return dst
}

// Write appends the full segment (header then payload) to dst.
func (s *Segment) Write(dst []byte) []byte {
	dst = s.WriteHeader(dst)
	return append(dst, s.Data...)
}

func appendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendUint16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}
