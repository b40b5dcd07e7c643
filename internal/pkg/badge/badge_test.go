package badge

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_RoundTrip(t *testing.T) {
	p := Payload{CompanyUsername: "acme", EmployeeCode: "EMP-001"}
	assert.Equal(t, "HRIS|acme|EMP-001", p.Encode())

	decoded, err := Decode(" HRIS|acme|EMP-001\n")
	require.NoError(t, err)
	assert.Equal(t, p, decoded)

	for _, bad := range []string{"", "HRIS|acme", "XYZ|acme|EMP-001", "HRIS||EMP-001"} {
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrInvalidPayload, bad)
	}
}

func TestPNG(t *testing.T) {
	data, err := PNG(Payload{CompanyUsername: "acme", EmployeeCode: "EMP-001"}, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}
