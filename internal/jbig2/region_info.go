package jbig2

// WriteRegionInfo appends a region segment information field (17 bytes,
// Annex 7.4.1): width, height, X and Y location, each 4 bytes big-endian,
// followed by the 1-byte external combination operator flags.
func WriteRegionInfo(dst []byte, info RegionInfo) []byte {
	dst = appendUint32(dst, uint32(info.Width))
	dst = appendUint32(dst, uint32(info.Height))
	dst = appendUint32(dst, uint32(info.X))
	dst = appendUint32(dst, uint32(info.Y))
	dst = append(dst, info.Flags)
	return dst
}
