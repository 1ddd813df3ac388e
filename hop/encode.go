package hop

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	sphinx "github.com/lightningnetwork/lightning-onion"
	"github.com/lightningnetwork/lnd/record"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	// extraTypeStart is the record type assigned to the first extra field
	// when we encode a representative payload. Subsequent fields use the
	// following odd types so that they are ignored by recipients.
	extraTypeStart = record.CustomTypeStart + 1

	// maxEncodeSize is the largest tlv stream that we'll produce for a
	// representative payload. Nothing larger can fit in an onion.
	maxEncodeSize = 65535
)

// ErrPayloadTooLarge is returned when we're asked to encode a payload that
// could never fit in an onion.
var ErrPayloadTooLarge = errors.New("payload too large to encode")

// EncodePayload writes a representative tlv stream for the payload to w.
// The amount and expiry are taken from the payload, all other values are
// zero-filled. Extra fields are written as custom records.
func EncodePayload(w io.Writer, p Payload) error {
	estimate, err := p.TLVSize()
	if err != nil {
		return err
	}

	if estimate > maxEncodeSize {
		return fmt.Errorf("%w: estimated %v bytes, max %v",
			ErrPayloadTooLarge, estimate, maxEncodeSize)
	}

	var (
		amt      = uint64(p.Amount)
		lockTime = p.Height
		scid     uint64
	)

	// Records must be added in ascending type order.
	records := []tlv.Record{
		record.NewAmtToFwdRecord(&amt),
		record.NewLockTimeRecord(&lockTime),
		record.NewNextHopIDRecord(&scid),
	}

	if p.includeMPP() {
		var paymentAddr [32]byte
		mpp := record.NewMPP(p.Amount, paymentAddr)
		records = append(records, mpp.Record())
	}

	if p.includeMetadata() {
		metadata := make([]byte, p.MetadataLen)
		records = append(records, record.NewMetadataRecord(&metadata))
	}

	extra := make(map[uint64][]byte, len(p.Extra))
	for i, length := range p.Extra {
		extra[extraTypeStart+2*uint64(i)] = make([]byte, length)
	}
	records = append(records, tlv.MapToRecords(extra)...)

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return err
	}

	return stream.Encode(w)
}

// EncodedSize encodes a representative payload and returns the number of
// bytes it would occupy in an onion, including its length prefix and hmac.
func EncodedSize(p Payload) (uint64, error) {
	var b bytes.Buffer
	if err := EncodePayload(&b, p); err != nil {
		return 0, err
	}

	hopPayload := sphinx.HopPayload{
		Type:    sphinx.PayloadTLV,
		Payload: b.Bytes(),
	}

	return uint64(hopPayload.NumBytes()), nil
}
