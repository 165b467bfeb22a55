package fixture

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/roach88/mixq/internal/mixed"
)

// DomainFingerprint separates dataset fingerprints from other hashes.
// The version suffix changes whenever the encoding below does.
const DomainFingerprint = "mixq/fixture/v1"

// Fingerprint returns a stable hex SHA-256 of values in order.
//
// Format: SHA256(domain + 0x00 + for each value: uvarint(len(key)) + key).
// Keys are length-prefixed, so no two distinct sequences share an encoding.
// Values that are Equal contribute identical bytes.
func Fingerprint(values []mixed.Value) string {
	h := sha256.New()
	h.Write([]byte(DomainFingerprint))
	h.Write([]byte{0x00})

	var buf []byte
	for _, v := range values {
		key := v.Key()
		buf = binary.AppendUvarint(buf[:0], uint64(len(key)))
		buf = append(buf, key...)
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
