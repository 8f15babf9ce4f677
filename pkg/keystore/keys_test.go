package keystore

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// Reference derivation for the placeholder VirtualBox seed.
const (
	testSeedHex          = "5669727475616c426f78003000"
	testMasterKeyHex     = "487802705e5ac4a9931c44aa4d32252239e0bf8f0c854dde490cccf687efad9c"
	testValidationKeyHex = "5d0e47ed8076dc0bab1d7cbde111ed5f903b2183cef28a13c2ae8aad4b0b434f"
)

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := hex.DecodeString(testSeedHex)
	if err != nil {
		t.Fatalf("failed to decode seed: %v", err)
	}
	return seed
}

func TestDeriveSessionKeys(t *testing.T) {
	wantMaster, _ := hex.DecodeString(testMasterKeyHex)
	wantValidation, _ := hex.DecodeString(testValidationKeyHex)

	keys := DeriveSessionKeys(testSeed(t))
	if !bytes.Equal(keys.Master[:], wantMaster) {
		t.Errorf("master = %x, want %s", keys.Master, testMasterKeyHex)
	}
	if !bytes.Equal(keys.Validation[:], wantValidation) {
		t.Errorf("validation = %x, want %s", keys.Validation, testValidationKeyHex)
	}
}

func TestDeriveSessionKeysDeterministic(t *testing.T) {
	first := DeriveSessionKeys(testSeed(t))
	second := DeriveSessionKeys(testSeed(t))
	if first != second {
		t.Error("repeated derivations differ")
	}

	other := DeriveSessionKeys([]byte("a different seed"))
	if other.Master == first.Master {
		t.Error("different seeds produced the same master key")
	}
}
