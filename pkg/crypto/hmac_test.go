package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// Test vectors from RFC 4231 (HMAC-SHA-256 cases).
var hmacSHA256TestVectors = []struct {
	name string
	key  string
	data string
	mac  string
}{
	// RFC 4231 Test Case 1
	{
		name: "RFC4231_TC1",
		key:  "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
		data: "4869205468657265", // "Hi There"
		mac:  "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
	},
	// RFC 4231 Test Case 2
	{
		name: "RFC4231_TC2",
		key:  "4a656665", // "Jefe"
		data: "7768617420646f2079612077616e7420666f72206e6f7468696e673f",
		mac:  "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
	},
	// RFC 4231 Test Case 3
	{
		name: "RFC4231_TC3",
		key:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		data: "dddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddd",
		mac:  "773ea91e36800e46854db8ebd09181a72959098b3ef8c122d9635514ced565fe",
	},
}

func TestHMACSHA256(t *testing.T) {
	for _, tc := range hmacSHA256TestVectors {
		t.Run(tc.name, func(t *testing.T) {
			key, _ := hex.DecodeString(tc.key)
			data, _ := hex.DecodeString(tc.data)
			want, _ := hex.DecodeString(tc.mac)

			got := HMACSHA256(key, data)
			if !bytes.Equal(got[:], want) {
				t.Errorf("HMACSHA256 = %x, want %x", got, want)
			}

			if gotSlice := HMACSHA256Slice(key, data); !bytes.Equal(gotSlice, want) {
				t.Errorf("HMACSHA256Slice = %x, want %x", gotSlice, want)
			}
		})
	}
}

func TestHMACEqual(t *testing.T) {
	mac1 := HMACSHA256Slice([]byte("key"), []byte("message"))
	mac2 := HMACSHA256Slice([]byte("key"), []byte("message"))
	if !HMACEqual(mac1, mac2) {
		t.Error("equal MACs reported unequal")
	}

	mac2[0] ^= 0x01
	if HMACEqual(mac1, mac2) {
		t.Error("unequal MACs reported equal")
	}
}
