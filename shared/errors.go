package shared

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrRoundOutOfRange    = errors.New("round out of range")
	ErrNotBlinded         = errors.New("not blinded")
	ErrAlreadyBlinded     = errors.New("already blinded")
	ErrUnrecognizedIssuer = errors.New("unrecognized issuer")
	ErrMalformedCoin      = errors.New("malformed coin")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrCoinNotExist       = errors.New("coin doesn't exist")
)

// HashMismatchError is returned when a revealed share doesn't re-hash to the
// commitment the coin was signed over. It aborts the acceptance: a coin that
// fails any round is rejected outright.
type HashMismatchError struct {
	Round int
	Side  byte
}

func (err HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch at round %d, side %d", err.Round, err.Side)
}
