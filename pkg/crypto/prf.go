package crypto

// PRFSHA256 implements the TLS 1.2 pseudorandom function (RFC 5246
// Section 5) instantiated with HMAC-SHA-256:
//
//	A(0) = label || seed
//	A(i) = HMAC_hash(secret, A(i-1))
//
//	P_hash(secret, label || seed) = HMAC_hash(secret, A(1) || label || seed) ||
//	                                HMAC_hash(secret, A(2) || label || seed) || ...
//
// The concatenated output is truncated to length bytes. The sensor firmware
// derives its session keys with this exact construction, so the output must
// match byte for byte.
func PRFSHA256(secret, label, seed []byte, length int) []byte {
	lseed := make([]byte, 0, len(label)+len(seed))
	lseed = append(lseed, label...)
	lseed = append(lseed, seed...)

	// A(1)
	a := HMACSHA256Slice(secret, lseed)

	out := make([]byte, 0, length+SHA256LenBytes)
	buf := make([]byte, 0, SHA256LenBytes+len(lseed))
	for len(out) < length {
		buf = append(buf[:0], a...)
		buf = append(buf, lseed...)
		out = append(out, HMACSHA256Slice(secret, buf)...)
		a = HMACSHA256Slice(secret, a)
	}
	return out[:length]
}
