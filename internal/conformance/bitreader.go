package conformance

import "encoding/binary"

// segmentHeader is the handful of segment header fields the conformance
// tests need to walk a byte stream produced by EncodeGeneric: enough to
// skip to each segment's payload without a full Annex 7.2 parser.
type segmentHeader struct {
	Number   uint32
	Type     uint8
	Referred int
	pageLen  int
	DataLen  uint32
}

// readSegmentHeader parses one segment header starting at data[0] and
// returns it along with the header's byte length, mirroring the subset of
// Annex 7.2 this encoder's own Segment.WriteHeader ever emits: short-form
// referred-to count (at most 4 entries) and a 1- or 4-byte page
// association.
func readSegmentHeader(data []byte) (segmentHeader, int) {
	var h segmentHeader
	h.Number = binary.BigEndian.Uint32(data[0:4])
	flags := data[4]
	h.Type = flags & 0x3f
	longPage := flags&0x40 != 0

	refByte := data[5]
	refCount := int(refByte >> 5)
	offset := 6

	width := 1
	switch {
	case h.Number <= 256:
		width = 1
	case h.Number <= 65536:
		width = 2
	default:
		width = 4
	}
	h.Referred = refCount
	offset += refCount * width

	if longPage {
		h.pageLen = 4
	} else {
		h.pageLen = 1
	}
	offset += h.pageLen

	h.DataLen = binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4

	return h, offset
}

// SkipFileHeader returns data with the 13-byte JBIG2 file header removed,
// if present (detected by the standard 8-byte magic).
func SkipFileHeader(data []byte) []byte {
	magic := []byte{0x97, 0x4a, 0x42, 0x32, 0x0d, 0x0a, 0x1a, 0x0a}
	if len(data) >= 8 && string(data[:8]) == string(magic) {
		return data[13:]
	}
	return data
}

// GenericRegionPayload walks a segment stream (as produced by EncodeGeneric,
// with or without the file header) and returns the arithmetic-coded data of
// the first generic region segment it finds, along with the region's width
// and height from its RegionInfo.
func GenericRegionPayload(data []byte) (coded []byte, width, height int, tpgdon bool) {
	data = SkipFileHeader(data)
	for len(data) > 0 {
		h, hdrLen := readSegmentHeader(data)
		payload := data[hdrLen : hdrLen+int(h.DataLen)]

		if h.Type == 38 || h.Type == 39 {
			width = int(binary.BigEndian.Uint32(payload[0:4]))
			height = int(binary.BigEndian.Uint32(payload[4:8]))
			flags := payload[17]
			tpgdon = flags&0x08 != 0
			coded = payload[26:]
			return coded, width, height, tpgdon
		}

		data = data[hdrLen+int(h.DataLen):]
	}
	return nil, 0, 0, false
}
