package keystore

// TrustVerdict is the outcome of device-authenticity verification.
type TrustVerdict int

const (
	// TrustUnknown means no device-authentication block has been seen.
	TrustUnknown TrustVerdict = iota

	// TrustVerified means the key-exchange record carries a valid
	// signature from the trust anchor.
	TrustVerified

	// TrustRejected means the signature is well formed but not from the
	// trust anchor: the device is not genuine.
	TrustRejected

	// TrustError means verification itself failed (malformed record or
	// signature).
	TrustError
)

// String returns the verdict name.
func (v TrustVerdict) String() string {
	switch v {
	case TrustUnknown:
		return "Unknown"
	case TrustVerified:
		return "Verified"
	case TrustRejected:
		return "Rejected"
	case TrustError:
		return "Error"
	default:
		return "Invalid"
	}
}
