package hop

import (
	"github.com/lightningnetwork/lnd/record"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ExtraFromCustomRecords validates that all records provided are in the
// custom type range and returns the length of each record's value, ordered
// by record type as they would appear in a tlv stream.
func ExtraFromCustomRecords(customRecords record.CustomSet) ([]uint64,
	error) {

	if err := customRecords.Validate(); err != nil {
		return nil, err
	}

	types := maps.Keys(customRecords)
	slices.Sort(types)

	lengths := make([]uint64, len(types))
	for i, t := range types {
		lengths[i] = uint64(len(customRecords[t]))
	}

	return lengths, nil
}
