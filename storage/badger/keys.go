package badger

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Key layout. Every partition owns the prefix "part:<name>:doc:"; the
// document key suffix is a fixed-width BLAKE2b digest of the source URL
// so that re-ingesting a URL always lands on the same key.
const (
	partitionPrefix = "part"
	docSegment      = "doc"
)

// hashURL derives the fixed-width key suffix for a document URL.
func hashURL(url string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// makeDocPrefix generates the key prefix shared by all documents of a partition.
func makeDocPrefix(partition string) []byte {
	return []byte(partitionPrefix + ":" + partition + ":" + docSegment + ":")
}

// makeDocKey generates the storage key for a document within a partition.
func makeDocKey(partition, url string) []byte {
	prefix := makeDocPrefix(partition)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], hashURL(url))
	return buf
}
