package codec

import "hash/crc32"

// Checksum computes the CRC32 (IEEE) of a payload
func Checksum(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}

// VerifyChecksum reports whether sum matches the payload
func VerifyChecksum(payload []byte, sum uint32) bool {
	return Checksum(payload) == sum
}
