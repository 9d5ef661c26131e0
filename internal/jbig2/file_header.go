package jbig2

// jbig2FileSignature is the fixed 8-byte marker every standalone JBIG2 file
// begins with (Annex D.4.1).
var jbig2FileSignature = []byte{0x97, 0x4a, 0x42, 0x32, 0x0d, 0x0a, 0x1a, 0x0a}

const (
	fileFlagSequential  = 0x01
	fileFlagUnknownPage = 0x02
)

// WriteFileHeader appends a standalone-file header to dst: the fixed
// signature, one flags byte, and (since numPages is always known to this
// encoder by the time a file is produced) a 4-byte page count.
func WriteFileHeader(dst []byte, numPages uint32) []byte {
	dst = append(dst, jbig2FileSignature...)
	dst = append(dst, fileFlagSequential)
	dst = appendUint32(dst, numPages)
	return dst
}
