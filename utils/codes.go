package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"
)

//
// ===========================================================
//  IDENTIFIER GENERATORS
// ===========================================================
//

// FourDigitCode returns a random code in [1000, 9999].
// Uses crypto/rand + math/big to avoid modulo bias.
func FourDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

// GenerateGRCCandidate builds a GRC number candidate, e.g. "GRC-3245".
// Uniqueness is the caller's responsibility (checked against both the
// bookings and reservations tables before use).
func GenerateGRCCandidate() (string, error) {
	code, err := FourDigitCode()
	if err != nil {
		return "", err
	}
	return "GRC-" + code, nil
}

// GenerateBookingRef builds a booking reference, e.g. "BRF-20250727-1549-3245".
// Timestamp plus random suffix; collisions are caught by the DB unique index.
func GenerateBookingRef() (string, error) {
	code, err := FourDigitCode()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	return fmt.Sprintf("BRF-%s-%s-%s", now.Format("20060102"), now.Format("1504"), code), nil
}

// GenerateReservationID builds a reservation id, e.g. "RSV-20250727-1541-1234".
func GenerateReservationID() (string, error) {
	code, err := FourDigitCode()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	return fmt.Sprintf("RSV-%s-%s-%s", now.Format("20060102"), now.Format("1504"), code), nil
}

// GenerateSecureToken returns a random hex token (length = bytes).
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
