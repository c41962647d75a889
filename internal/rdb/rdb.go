package rdb

import "encoding/base64"

// Opcodes that precede a record in the RDB body.
const (
	opAux          byte = 0xFA
	opSelectDB     byte = 0xFE
	opResizeDB     byte = 0xFB
	opExpireSecs   byte = 0xFD
	opExpireMillis byte = 0xFC
	opEOF          byte = 0xFF
)

// stringEncodingKind flags whether a length-encoded string payload was
// stored as raw text/bytes or as one of the 0b11-prefixed integer special
// encodings. Restore keeps the raw bytes either way; this only documents
// which branch produced them.
type stringEncodingKind int

const (
	stringEncodingPlain stringEncodingKind = iota
	stringEncodingInteger
)

const magic = "REDIS"

// ParsedRDB is the structured result of parsing an RDB byte stream. It is
// produced with no side effects; restoring it into a store is a separate
// step left to the caller.
type ParsedRDB struct {
	Version  int
	Aux      map[string][]byte
	DB       map[string]*Entry
	SelectDB *int64
	Checksum uint64
}

// Entry is one key's parsed value, shaped to feed storage.Value directly.
type Entry struct {
	Raw      []byte
	ExpiryMs *int64 // absolute unix ms, nil if no TTL
	Encoding byte   // mirrors storage.Encoding
}

// emptySnapshotBase64 is the canonical empty RDB file: header, five aux
// fields (redis-ver, redis-bits, ctime, used-mem, aof-base), no keys, then
// EOF and checksum (88 bytes decoded).
// Used as the replication snapshot when a master has nothing to back up.
const emptySnapshotBase64 = "UkVESVMwMDEx+glyZWRpcy12ZXIFNy4yLjD6CnJlZGlzLWJpdHPAQPoFY3RpbWXCbQi8ZfoIdXNlZC1tZW3CsMQQAPoIYW9mLWJhc2XAAP/wbjv+wP9aog=="

// EmptySnapshot is the decoded form of emptySnapshotBase64.
var EmptySnapshot = mustDecodeBase64(emptySnapshotBase64)

func mustDecodeBase64(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
