package hop

import "github.com/lightningnetwork/lnd/tlv"

// BigSizeLen returns the number of bytes that value occupies when written as
// a BigSize varint:
//
//	0 - 252:                  1 byte
//	253 - 65535:              3 bytes (0xfd + uint16)
//	65536 - 4294967295:       5 bytes (0xfe + uint32)
//	4294967296 - 2^64-1:      9 bytes (0xff + uint64)
func BigSizeLen(value uint64) uint64 {
	return tlv.VarIntSize(value)
}
