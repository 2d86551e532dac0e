package model

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"hash"

	blake2b "github.com/minio/blake2b-simd"
)

// Equal tells if two entries are structurally identical: same kind, id, name,
// content and recursively the same children.
//
// Root revisions are not compared.
func Equal(a, b Entry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.ID() != b.ID() || a.Name() != b.Name() {
		return false
	}
	if af, ok := a.(*File); ok {
		return bytes.Equal(af.Content(), b.(*File).Content())
	}
	ad, _ := AsDirectory(a)
	bd, _ := AsDirectory(b)
	if ad.children == bd.children {
		// shared subtree
		return true
	}
	if ad.Len() != bd.Len() {
		return false
	}
	left, right := ad.Children(), bd.Children()
	for i := range left {
		if !Equal(left[i], right[i]) {
			return false
		}
	}
	return true
}

// Fingerprint computes a blake2b digest of the structure of an entry, as
// compared by Equal.
func Fingerprint(e Entry) string {
	hasher := blake2b.New256()
	writeFingerprint(hasher, e)
	return hex.EncodeToString(hasher.Sum(nil))
}

func writeFingerprint(h hash.Hash, e Entry) {
	var scratch [binary.MaxVarintLen64]byte
	writeUvarint := func(v uint64) {
		n := binary.PutUvarint(scratch[:], v)
		//#nosec
		_, _ = h.Write(scratch[:n])
	}
	writeBytes := func(b []byte) {
		writeUvarint(uint64(len(b)))
		//#nosec
		_, _ = h.Write(b)
	}

	writeUvarint(uint64(e.Kind()))
	writeUvarint(uint64(e.ID()))
	writeBytes([]byte(e.Name()))
	if f, ok := e.(*File); ok {
		writeBytes(f.Content())
		return
	}
	d, _ := AsDirectory(e)
	writeUvarint(uint64(d.Len()))
	d.ForEach(func(child Entry) bool {
		writeFingerprint(h, child)
		return true
	})
}
