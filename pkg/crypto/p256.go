package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"
)

// P256ScalarSizeBytes is the size of a P-256 affine coordinate or scalar.
const P256ScalarSizeBytes = 32

// P-256 errors.
var (
	// ErrPointNotOnCurve is returned when affine coordinates do not
	// describe a point on the P-256 curve.
	ErrPointNotOnCurve = errors.New("crypto: point is not on the P-256 curve")

	// ErrKeyPairMismatch is returned when a stored public point does not
	// equal d*G for the stored private scalar d.
	ErrKeyPairMismatch = errors.New("crypto: public key does not match private scalar")
)

// ReverseBytes returns a copy of b with the byte order reversed.
// The sensor stores curve coordinates little-endian while crypto/elliptic
// expects big-endian.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// P256PublicKeyFromAffine builds a P-256 public key from big-endian 32-byte
// affine coordinates, validating that the point lies on the curve.
func P256PublicKeyFromAffine(x, y []byte) (*ecdsa.PublicKey, error) {
	if len(x) != P256ScalarSizeBytes || len(y) != P256ScalarSizeBytes {
		return nil, fmt.Errorf("crypto: coordinates must be %d bytes, got %d and %d",
			P256ScalarSizeBytes, len(x), len(y))
	}
	bx := new(big.Int).SetBytes(x)
	by := new(big.Int).SetBytes(y)
	if !elliptic.P256().IsOnCurve(bx, by) {
		return nil, ErrPointNotOnCurve
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: bx, Y: by}, nil
}

// P256PublicKeyFromAffineLE is P256PublicKeyFromAffine for little-endian
// coordinates.
func P256PublicKeyFromAffineLE(x, y []byte) (*ecdsa.PublicKey, error) {
	return P256PublicKeyFromAffine(ReverseBytes(x), ReverseBytes(y))
}

// P256KeyPairFromComponents reconstructs a P-256 keypair from little-endian
// affine coordinates x, y and little-endian private scalar d. It validates
// that the point lies on the curve and that the public point equals d*G.
func P256KeyPairFromComponents(x, y, d []byte) (*ecdsa.PrivateKey, error) {
	pub, err := P256PublicKeyFromAffineLE(x, y)
	if err != nil {
		return nil, err
	}
	if len(d) != P256ScalarSizeBytes {
		return nil, fmt.Errorf("crypto: scalar must be %d bytes, got %d", P256ScalarSizeBytes, len(d))
	}
	scalar := new(big.Int).SetBytes(ReverseBytes(d))

	gx, gy := elliptic.P256().ScalarBaseMult(scalar.Bytes())
	if gx.Cmp(pub.X) != 0 || gy.Cmp(pub.Y) != 0 {
		return nil, ErrKeyPairMismatch
	}

	return &ecdsa.PrivateKey{PublicKey: *pub, D: scalar}, nil
}

// ecdsaSignature is the ASN.1 structure of a DER-encoded ECDSA signature.
type ecdsaSignature struct {
	R, S *big.Int
}

// ECDSAVerifyDigest verifies an ASN.1 DER encoded ECDSA signature over a
// precomputed digest.
//
// A well-formed signature that does not match returns (false, nil); a
// signature that cannot be parsed returns an error. Callers need the
// distinction: the first means an untrusted peer, the second a garbled
// record.
func ECDSAVerifyDigest(pub *ecdsa.PublicKey, digest, sig []byte) (bool, error) {
	var parsed ecdsaSignature
	rest, err := asn1.Unmarshal(sig, &parsed)
	if err != nil {
		return false, fmt.Errorf("crypto: malformed ECDSA signature: %w", err)
	}
	if len(rest) != 0 {
		return false, fmt.Errorf("crypto: %d trailing bytes after ECDSA signature", len(rest))
	}
	return ecdsa.Verify(pub, digest, parsed.R, parsed.S), nil
}
