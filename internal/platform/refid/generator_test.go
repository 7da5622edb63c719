package refid

import (
	"crypto/md5"
	"encoding/binary"
	"strconv"
	"testing"
)

func TestGenerate_IsStable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		club string
	}{
		{name: "Bukayo Saka", club: "Arsenal"},
		{name: "José Sá", club: "Wolverhampton Wanderers"},
		{name: "Son Heung-min", club: "Tottenham Hotspur"},
		{name: "", club: ""},
		{name: "", club: "Arsenal"},
		{name: "Ødegaard", club: ""},
	}

	for _, tc := range cases {
		first := Generate(tc.name, tc.club)
		second := Generate(tc.name, tc.club)
		if first != second {
			t.Fatalf("generate(%q, %q) not stable: %s != %s", tc.name, tc.club, first, second)
		}
		if first == "" {
			t.Fatalf("generate(%q, %q) returned empty id", tc.name, tc.club)
		}
		for _, r := range first {
			if r < '0' || r > '9' {
				t.Fatalf("generate(%q, %q) returned non-decimal id %q", tc.name, tc.club, first)
			}
		}
	}
}

func TestGenerate_MatchesMaskedDigestPrefix(t *testing.T) {
	t.Parallel()

	sum := md5.Sum([]byte("Bukayo Saka_Arsenal"))
	want := strconv.FormatUint(binary.LittleEndian.Uint64(sum[:8])&0x7fffffffffffffff, 10)

	if got := Generate("Bukayo Saka", "Arsenal"); got != want {
		t.Fatalf("unexpected id: want %s got %s", want, got)
	}
}

func TestGenerate_ClubLabelChangesID(t *testing.T) {
	t.Parallel()

	if Generate("Bukayo Saka", "Arsenal") == Generate("Bukayo Saka", "England") {
		t.Fatalf("expected different ids for different club labels")
	}
	if Generate("a_b", "c") != Generate("a", "b_c") {
		// Both hash "a_b_c"; the separator is not escaped.
		t.Fatalf("expected concatenation collision to be preserved")
	}
}

func TestMD5Generator_DelegatesToGenerate(t *testing.T) {
	t.Parallel()

	var gen Generator = NewMD5Generator()
	if gen.Generate("Declan Rice", "Arsenal") != Generate("Declan Rice", "Arsenal") {
		t.Fatalf("generator and package func disagree")
	}
}
