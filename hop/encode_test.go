package hop

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/lnd/record"
	"github.com/lightningnetwork/lnd/tlv"
	"github.com/stretchr/testify/require"
)

// TestEncodePayload tests that a representative payload can be decoded with
// the onion records that it was encoded with, and that extra fields are
// present as custom records of the requested length.
func TestEncodePayload(t *testing.T) {
	t.Parallel()

	payload := NewFinalPayload(1000, true, 16, []uint64{10, 20})

	var b bytes.Buffer
	require.NoError(t, EncodePayload(&b, payload))

	var (
		amt      uint64
		lockTime uint32
		scid     uint64
		mpp      = &record.MPP{}
		metadata []byte
	)

	stream, err := tlv.NewStream(
		record.NewAmtToFwdRecord(&amt),
		record.NewLockTimeRecord(&lockTime),
		record.NewNextHopIDRecord(&scid),
		mpp.Record(),
		record.NewMetadataRecord(&metadata),
	)
	require.NoError(t, err)

	parsedTypes, err := stream.DecodeWithParsedTypes(&b)
	require.NoError(t, err)

	require.EqualValues(t, 1000, amt)
	require.EqualValues(t, ExpiryHeight, lockTime)
	require.EqualValues(t, 1000, mpp.TotalMsat())
	require.Len(t, metadata, 16)

	require.Len(t, parsedTypes[extraTypeStart], 10, spew.Sdump(parsedTypes))
	require.Len(t, parsedTypes[extraTypeStart+2], 20,
		spew.Sdump(parsedTypes))
}

// TestEncodedSize tests that the size of a real payload is within our
// estimate, which budgets four bytes of framing for every field.
func TestEncodedSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  Payload
		expected uint64
	}{
		{
			// amt: 2+2, cltv: 2+3, scid: 2+8, mpp: 2+32+2 = 55
			// 55 + 1 byte length + 32 byte hmac.
			name:     "final with mpp",
			payload:  NewFinalPayload(1000, true, 0, nil),
			expected: 88,
		},
		{
			// amt: 2+2, cltv: 2+3, scid: 2+8 = 19
			name:     "intermediate",
			payload:  NewIntermediatePayload(1000, nil),
			expected: 52,
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := EncodedSize(testCase.payload)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, encoded)

			estimate, err := testCase.payload.Size()
			require.NoError(t, err)
			require.LessOrEqual(t, encoded, estimate)
		})
	}
}

// TestEncodePayloadTooLarge tests that we refuse to allocate payloads that
// could never fit in an onion.
func TestEncodePayloadTooLarge(t *testing.T) {
	t.Parallel()

	payload := NewFinalPayload(1000, false, maxEncodeSize, nil)

	var b bytes.Buffer
	err := EncodePayload(&b, payload)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.Zero(t, b.Len())
}
