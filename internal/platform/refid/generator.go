package refid

import (
	"crypto/md5"
	"encoding/binary"
	"strconv"
)

// Generator derives stable identifiers that correlate one player across
// player, goalkeeping, shooting and details records and across crawl runs.
type Generator interface {
	Generate(name, clubLabel string) string
}

type MD5Generator struct{}

func NewMD5Generator() *MD5Generator {
	return &MD5Generator{}
}

func (g *MD5Generator) Generate(name, clubLabel string) string {
	return Generate(name, clubLabel)
}

// Generate hashes name + "_" + clubLabel and renders the first eight digest
// bytes as a non-negative base-10 integer.
func Generate(name, clubLabel string) string {
	sum := md5.Sum([]byte(name + "_" + clubLabel))
	value := binary.LittleEndian.Uint64(sum[:8]) & 0x7fffffffffffffff
	return strconv.FormatUint(value, 10)
}
