package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/carlakc/onionsizer/hop"
	"github.com/carlakc/onionsizer/routing"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/urfave/cli"
)

// planFlags are the payment parameters shared by all sizing commands.
var planFlags = []cli.Flag{
	cli.Uint64Flag{
		Name:  "amt",
		Usage: "the amount of the payment in millisatoshis",
	},
	cli.StringFlag{
		Name:  "mpp",
		Value: "false",
		Usage: "whether the payment is a multi-part payment, one of " +
			"{true, false, t, f, 1, 0}",
	},
	cli.Uint64Flag{
		Name:  "metadata_len",
		Usage: "the length of the payment metadata for the final hop",
	},
	cli.StringFlag{
		Name: "extra_lengths",
		Usage: "a comma separated list of lengths of additional " +
			"fields included in every hop's payload",
	},
	cli.StringFlag{
		Name: "data",
		Usage: "custom records that are sent to every hop, the " +
			"required format is: <record_id>=<hex_value>," +
			"<record_id>=<hex_value>",
	},
}

var planCommand = cli.Command{
	Name:      "plan",
	Usage:     "Calculate the number of hops that fit in an onion.",
	ArgsUsage: "amt",
	Description: `
	Calculate the maximum number of hops that a payment can be routed
	over, and the number of filler bytes left in the onion. The final
	hop's payload is reserved first, and the remaining space is filled
	with intermediate hops.
	`,
	Flags:  planFlags,
	Action: plan,
}

var recordsCommand = cli.Command{
	Name:      "records",
	Usage:     "Show the size of each hop's payload.",
	ArgsUsage: "amt",
	Description: `
	Show the estimated tlv and onion size of the final and intermediate
	hop payloads, along with the size of a representative payload that
	is encoded with real onion records.
	`,
	Flags:  planFlags,
	Action: records,
}

// paymentParams holds the parsed parameters of a payment.
type paymentParams struct {
	amt         lnwire.MilliSatoshi
	mpp         bool
	metadataLen uint64
	extra       []uint64
}

// parsePaymentParams reads payment parameters from the command's flags. The
// amount may be provided as a flag or as the first positional argument.
func parsePaymentParams(ctx *cli.Context) (*paymentParams, error) {
	var (
		params = &paymentParams{}
		args   = ctx.Args()
		err    error
	)

	switch {
	case ctx.IsSet("amt") && args.Present():
		return nil, fmt.Errorf("amt provided as both flag and "+
			"argument: %v", args.First())

	case ctx.IsSet("amt"):
		params.amt = lnwire.MilliSatoshi(ctx.Uint64("amt"))

	case args.Present():
		amt, err := strconv.ParseUint(args.First(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to decode amt: %w",
				err)
		}
		params.amt = lnwire.MilliSatoshi(amt)
		args = args.Tail()

	default:
		return nil, errors.New("amt argument missing")
	}

	// Flag parsing stops at the first positional argument, so anything
	// left over is a flag that would otherwise be silently ignored.
	if len(args) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v, flags "+
			"must precede amt", args)
	}

	params.mpp, err = parseBool(ctx.String("mpp"))
	if err != nil {
		return nil, fmt.Errorf("mpp: %w", err)
	}

	params.metadataLen = ctx.Uint64("metadata_len")

	params.extra, err = parseLengths(ctx.String("extra_lengths"))
	if err != nil {
		return nil, fmt.Errorf("extra_lengths: %w", err)
	}

	customRecords, err := parseCustomRecords(ctx.String("data"))
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}

	customLengths, err := hop.ExtraFromCustomRecords(customRecords)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	params.extra = append(params.extra, customLengths...)

	return params, nil
}

func plan(ctx *cli.Context) error {
	params, err := parsePaymentParams(ctx)
	if err != nil {
		return err
	}

	result, err := routing.Plan(
		params.amt, params.mpp, params.metadataLen, params.extra,
	)
	if err != nil {
		return err
	}

	log.Debugf("Planned onion for amt=%v mpp=%v metadata_len=%v "+
		"extra=%v: %v", params.amt, params.mpp, params.metadataLen,
		params.extra, result)

	fmt.Printf("hops: %v\n", result.Hops)
	fmt.Printf("filler bytes: %v\n", result.Filler)

	return nil
}

func records(ctx *cli.Context) error {
	params, err := parsePaymentParams(ctx)
	if err != nil {
		return err
	}

	payloads := []hop.Payload{
		hop.NewFinalPayload(
			params.amt, params.mpp, params.metadataLen,
			params.extra,
		),
		hop.NewIntermediatePayload(params.amt, params.extra),
	}

	for _, payload := range payloads {
		tlvSize, err := payload.TLVSize()
		if err != nil {
			return fmt.Errorf("%v payload: %w", payload.Kind, err)
		}

		size, err := hop.WrappedSize(tlvSize)
		if err != nil {
			return fmt.Errorf("%v payload: %w", payload.Kind, err)
		}

		fmt.Printf("%v: tlv=%v onion=%v", payload.Kind, tlvSize, size)

		// Payloads that can't fit in an onion are still reported,
		// we just can't encode a representative for them.
		encoded, err := hop.EncodedSize(payload)
		switch {
		case errors.Is(err, hop.ErrPayloadTooLarge):
			log.Debugf("Not encoding %v payload: %v", payload.Kind,
				err)

		case err != nil:
			return err

		default:
			fmt.Printf(" encoded=%v", encoded)
		}

		fmt.Println()
	}

	return nil
}
