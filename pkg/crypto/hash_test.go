package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// FIPS 180-2 test vectors for SHA-256.
var sha256TestVectors = []struct {
	name    string
	message string
	digest  string
}{
	{
		name:    "abc",
		message: "abc",
		digest:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
	},
	{
		name:    "empty",
		message: "",
		digest:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	},
	{
		name:    "two_blocks",
		message: "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
		digest:  "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1",
	},
}

func TestSHA256(t *testing.T) {
	for _, tc := range sha256TestVectors {
		t.Run(tc.name, func(t *testing.T) {
			want, err := hex.DecodeString(tc.digest)
			if err != nil {
				t.Fatalf("failed to decode digest: %v", err)
			}

			got := SHA256([]byte(tc.message))
			if !bytes.Equal(got[:], want) {
				t.Errorf("SHA256 = %x, want %x", got, want)
			}

			if gotSlice := SHA256Slice([]byte(tc.message)); !bytes.Equal(gotSlice, want) {
				t.Errorf("SHA256Slice = %x, want %x", gotSlice, want)
			}
		})
	}
}

func TestNewSHA256Incremental(t *testing.T) {
	h := NewSHA256()
	h.Write([]byte("ab"))
	h.Write([]byte("c"))

	direct := SHA256([]byte("abc"))
	if !bytes.Equal(h.Sum(nil), direct[:]) {
		t.Errorf("incremental hash differs from one-shot")
	}
}
