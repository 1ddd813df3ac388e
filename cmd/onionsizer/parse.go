package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnd/record"
)

// parseBool parses the boolean spellings that we accept on the command line.
// Unlike strconv.ParseBool, upper case spellings are rejected.
func parseBool(s string) (bool, error) {
	switch s {
	case "true", "t", "1":
		return true, nil

	case "false", "f", "0":
		return false, nil

	default:
		return false, fmt.Errorf("invalid boolean: %q, expected one "+
			"of {true, false, t, f, 1, 0}", s)
	}
}

// parseLengths parses a comma separated list of field lengths. An empty
// string is an empty list.
func parseLengths(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	lengths := make([]uint64, len(parts))
	for i, part := range parts {
		length, err := strconv.ParseUint(
			strings.TrimSpace(part), 10, 64,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid length %q: %w", part,
				err)
		}

		lengths[i] = length
	}

	return lengths, nil
}

// parseCustomRecords parses custom records in the format used by lncli's
// sendpayment: <record_id>=<hex_value>,<record_id>=<hex_value>.
func parseCustomRecords(s string) (record.CustomSet, error) {
	customRecords := make(record.CustomSet)
	if s == "" {
		return customRecords, nil
	}

	for _, entry := range strings.Split(s, ",") {
		kv := strings.Split(entry, "=")
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid custom record "+
				"format: %q", entry)
		}

		recordID, err := strconv.ParseUint(kv[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid record id %q: %w",
				kv[0], err)
		}

		if _, ok := customRecords[recordID]; ok {
			return nil, fmt.Errorf("duplicate record id: %v",
				recordID)
		}

		value, err := hex.DecodeString(kv[1])
		if err != nil {
			return nil, fmt.Errorf("invalid value for record "+
				"%v: %w", recordID, err)
		}

		customRecords[recordID] = value
	}

	return customRecords, nil
}
