package shared

// IdentityMarker prefixes the fixed-width identity encoding. The XOR of a
// left/right share pair must reproduce a marked encoding for reconciliation
// to attribute a double-spend to the payer.
const IdentityMarker = "id:"

// EncodeIdentity returns the fixed-width encoding marker|owner|zero-padding.
func EncodeIdentity(owner string, width int) ([]byte, error) {
	if len(owner) == 0 || len(IdentityMarker)+len(owner) > width {
		return nil, ErrInvalidIdentity
	}

	enc := make([]byte, width)
	copy(enc, IdentityMarker)
	copy(enc[len(IdentityMarker):], owner)
	return enc, nil
}

// DecodeIdentity recovers the owner from an encoding, reporting whether the
// marker was present.
func DecodeIdentity(enc []byte) (string, bool) {
	if len(enc) <= len(IdentityMarker) || string(enc[:len(IdentityMarker)]) != IdentityMarker {
		return "", false
	}

	owner := enc[len(IdentityMarker):]
	end := len(owner)
	for end > 0 && owner[end-1] == 0 {
		end--
	}
	if end == 0 {
		return "", false
	}
	return string(owner[:end]), true
}

// Xor combines two equal-width byte strings. It returns nil if the widths
// differ.
func Xor(a, b []byte) []byte {
	if len(a) != len(b) {
		return nil
	}

	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
