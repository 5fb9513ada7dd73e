package workspace

import "fmt"

// StableHash is the 64-bit DJB2 rolling hash (h = h*33 + b, seeded with
// 5381, wrapping on overflow) of value, rendered as 16 lowercase hex digits.
//
// It is not cryptographic. It only needs to keep workspace names and asset
// checksums apart within a local cache.
func StableHash(value string) string {
	var h uint64 = 5381
	for i := 0; i < len(value); i++ {
		h = (h << 5) + h + uint64(value[i])
	}

	return fmt.Sprintf("%016x", h)
}
