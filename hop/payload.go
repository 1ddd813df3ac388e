package hop

import (
	"fmt"

	"github.com/carlakc/onionsizer/safemath"
	sphinx "github.com/lightningnetwork/lightning-onion"
	"github.com/lightningnetwork/lnd/lnwire"
)

const (
	// ShortChannelIDSize is the number of bytes used by the outgoing
	// short channel id that we assume every payload carries.
	ShortChannelIDSize = 8

	// MPPSize is the number of bytes that the final hop needs for the
	// payment secret of a multi-part payment. The repeated total amount is
	// assumed to be covered by the framing overhead.
	MPPSize = 32

	// FieldOverhead is the number of bytes we budget for the type and
	// length of each tlv field in a payload.
	FieldOverhead = 4

	// HMACSize is the size of the integrity tag that follows every hop
	// payload in the onion.
	HMACSize = sphinx.HMACSize

	// ExpiryHeight is a block height in the near future that we use to
	// estimate the size of the outgoing cltv value of every hop. We'll be
	// below a million blocks for a long time, so the varint length of
	// this value does not change across realistic heights.
	ExpiryHeight = 770_000
)

// Kind indicates whether a payload is for the final hop in a route or for a
// node that forwards the payment.
type Kind uint8

const (
	// Intermediate is a payload for a forwarding node.
	Intermediate Kind = iota

	// Final is the payload for the recipient of the payment.
	Final
)

// String returns a human readable name for the payload kind.
func (k Kind) String() string {
	switch k {
	case Intermediate:
		return "intermediate"

	case Final:
		return "final"

	default:
		return fmt.Sprintf("unknown kind: %d", uint8(k))
	}
}

// Payload describes the fields that are present in a single hop's onion
// payload. Only the length of each field is relevant for sizing.
type Payload struct {
	// Kind indicates whether this is the final hop's payload. The MPP and
	// metadata fields are only included in final payloads.
	Kind Kind

	// Amount is the amount to forward. It is encoded as a BigSize.
	Amount lnwire.MilliSatoshi

	// Height is the outgoing cltv value that we use to size the expiry
	// field. It is encoded as a BigSize.
	Height uint32

	// MPP indicates that the payment is a multi-part payment, which
	// requires the final hop to carry a payment secret.
	MPP bool

	// MetadataLen is the length of the payment metadata provided for the
	// final hop. A zero value omits the field entirely.
	MetadataLen uint64

	// Extra holds the value lengths of any additional fields that are
	// included in every payload, final or intermediate.
	Extra []uint64
}

// NewFinalPayload returns the payload description for the last hop in a
// route, sized with our representative expiry height.
func NewFinalPayload(amt lnwire.MilliSatoshi, mpp bool, metadataLen uint64,
	extra []uint64) Payload {

	return Payload{
		Kind:        Final,
		Amount:      amt,
		Height:      ExpiryHeight,
		MPP:         mpp,
		MetadataLen: metadataLen,
		Extra:       extra,
	}
}

// NewIntermediatePayload returns the payload description for a forwarding
// hop. Intermediate payloads never carry mpp or metadata fields.
func NewIntermediatePayload(amt lnwire.MilliSatoshi,
	extra []uint64) Payload {

	return Payload{
		Kind:   Intermediate,
		Amount: amt,
		Height: ExpiryHeight,
		Extra:  extra,
	}
}

// includeMPP returns true if the payload carries a payment secret.
func (p Payload) includeMPP() bool {
	return p.Kind == Final && p.MPP
}

// includeMetadata returns true if the payload carries payment metadata.
func (p Payload) includeMetadata() bool {
	return p.Kind == Final && p.MetadataLen != 0
}

// TLVSize returns the number of bytes required to serialize the tlv stream
// of the payload, excluding the length prefix and hmac that wrap it in the
// onion.
func (p Payload) TLVSize() (uint64, error) {
	// Every payload has a short channel id, an amount and an expiry. The
	// amount and expiry are varints, so their size depends on their
	// values.
	var (
		payloadBytes = ShortChannelIDSize +
			BigSizeLen(uint64(p.Amount)) +
			BigSizeLen(uint64(p.Height))

		fieldCount uint64 = 3
		err        error
	)

	if p.includeMPP() {
		payloadBytes += MPPSize
		fieldCount++
	}

	if p.includeMetadata() {
		payloadBytes, err = safemath.Add(payloadBytes, p.MetadataLen)
		if err != nil {
			return 0, fmt.Errorf("metadata: %w", err)
		}
		fieldCount++
	}

	// Extra fields are present in every payload.
	extraBytes, err := safemath.Sum(p.Extra...)
	if err != nil {
		return 0, fmt.Errorf("extra fields: %w", err)
	}

	payloadBytes, err = safemath.Add(payloadBytes, extraBytes)
	if err != nil {
		return 0, fmt.Errorf("extra fields: %w", err)
	}
	fieldCount += uint64(len(p.Extra))

	overhead, err := safemath.Mul(fieldCount, FieldOverhead)
	if err != nil {
		return 0, fmt.Errorf("field overhead: %w", err)
	}

	return safemath.Add(overhead, payloadBytes)
}

// Size returns the total number of bytes that the payload occupies in the
// onion's routing info.
func (p Payload) Size() (uint64, error) {
	tlvSize, err := p.TLVSize()
	if err != nil {
		return 0, err
	}

	return WrappedSize(tlvSize)
}

// WrappedSize returns the number of bytes that a tlv stream of the given size
// occupies in the onion once it is prefixed with its varint length and
// followed by its hmac. The prefix length depends on the value it prefixes,
// so it is computed from the stream and hmac size.
func WrappedSize(tlvSize uint64) (uint64, error) {
	withHMAC, err := safemath.Add(tlvSize, HMACSize)
	if err != nil {
		return 0, err
	}

	return safemath.Add(withHMAC, BigSizeLen(withHMAC))
}
