// Package badge renders the QR code printed on an employee's punch badge.
package badge

import (
	"errors"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	prefix = "HRIS"
	sep    = "|"

	// DefaultSize is the PNG edge length in pixels.
	DefaultSize = 256
)

var ErrInvalidPayload = errors.New("badge payload is not recognised")

// Payload identifies one employee of one company.
type Payload struct {
	CompanyUsername string
	EmployeeCode    string
}

// Encode renders p as "HRIS|<company>|<code>".
func (p Payload) Encode() string {
	return strings.Join([]string{prefix, p.CompanyUsername, p.EmployeeCode}, sep)
}

// Decode parses a scanned badge.
func Decode(s string) (Payload, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 3 || parts[0] != prefix || parts[1] == "" || parts[2] == "" {
		return Payload{}, ErrInvalidPayload
	}
	return Payload{CompanyUsername: parts[1], EmployeeCode: parts[2]}, nil
}

// PNG renders p as a QR code image with medium error correction.
func PNG(p Payload, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(p.Encode(), qrcode.Medium, size)
}
