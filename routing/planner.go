package routing

import (
	"fmt"

	"github.com/carlakc/onionsizer/hop"
	"github.com/carlakc/onionsizer/safemath"
	"github.com/lightningnetwork/lnd/lnwire"
)

// Budget is the number of bytes available for hop payloads in an onion's
// routing info.
const Budget = 1300

// Config holds the constants that a planner sizes routes with.
type Config struct {
	// Budget is the total number of bytes available for all payloads.
	Budget uint64

	// ExpiryHeight is the block height used to size each hop's outgoing
	// cltv value.
	ExpiryHeight uint32
}

// DefaultConfig returns a config with the onion's routing info budget and
// our representative expiry height.
func DefaultConfig() Config {
	return Config{
		Budget:       Budget,
		ExpiryHeight: hop.ExpiryHeight,
	}
}

// PlanResult describes the number of hops that fit in an onion.
type PlanResult struct {
	// Hops is the total number of hops, including the final hop, that fit
	// in the budget. This is zero if the final hop's payload alone is too
	// large.
	Hops uint64

	// Filler is the number of bytes of the budget left unused once all
	// payloads have been packed.
	Filler uint64

	// FinalSize is the number of bytes occupied by the final hop's
	// payload.
	FinalSize uint64

	// IntermediateSize is the number of bytes occupied by each
	// intermediate hop's payload. This is zero if no hops fit.
	IntermediateSize uint64
}

// String returns a summary of the plan.
func (p *PlanResult) String() string {
	return fmt.Sprintf("hops=%v filler=%v final_size=%v "+
		"intermediate_size=%v", p.Hops, p.Filler, p.FinalSize,
		p.IntermediateSize)
}

// Planner calculates the maximum number of hops that a payment's onion can
// carry. It holds no state between calls and is safe for concurrent use.
type Planner struct {
	cfg Config
}

// NewPlanner creates a planner that uses the config provided.
func NewPlanner(cfg Config) *Planner {
	return &Planner{
		cfg: cfg,
	}
}

// defaultPlanner is used by the package level Plan function.
var defaultPlanner = NewPlanner(DefaultConfig())

// Plan calculates the number of hops that fit in an onion with the default
// config. See Planner.Plan.
func Plan(amt lnwire.MilliSatoshi, mpp bool, metadataLen uint64,
	extra []uint64) (*PlanResult, error) {

	return defaultPlanner.Plan(amt, mpp, metadataLen, extra)
}

// payloads returns the final and intermediate payload descriptions for a
// payment.
func (p *Planner) payloads(amt lnwire.MilliSatoshi, mpp bool,
	metadataLen uint64, extra []uint64) (hop.Payload, hop.Payload) {

	final := hop.NewFinalPayload(amt, mpp, metadataLen, extra)
	final.Height = p.cfg.ExpiryHeight

	intermediate := hop.NewIntermediatePayload(amt, extra)
	intermediate.Height = p.cfg.ExpiryHeight

	return final, intermediate
}

// Plan calculates the maximum number of hops that a payment with the
// parameters provided can be routed over, and the number of filler bytes
// that remain. Space for the final hop is reserved first. Every intermediate
// hop's payload has the same size, so the number of them that fit in the
// remaining space is found by division.
func (p *Planner) Plan(amt lnwire.MilliSatoshi, mpp bool, metadataLen uint64,
	extra []uint64) (*PlanResult, error) {

	final, intermediate := p.payloads(amt, mpp, metadataLen, extra)

	finalSize, err := final.Size()
	if err != nil {
		return nil, fmt.Errorf("final payload size: %w", err)
	}

	// If the final hop can't fit, there is no route at all and the whole
	// budget is filler.
	if finalSize > p.cfg.Budget {
		return &PlanResult{
			Filler:    p.cfg.Budget,
			FinalSize: finalSize,
		}, nil
	}

	intermediateSize, err := intermediate.Size()
	if err != nil {
		return nil, fmt.Errorf("intermediate payload size: %w", err)
	}

	available, err := safemath.Sub(p.cfg.Budget, finalSize)
	if err != nil {
		return nil, err
	}

	intermediateCount := available / intermediateSize

	used, err := safemath.Mul(intermediateCount, intermediateSize)
	if err != nil {
		return nil, err
	}

	filler, err := safemath.Sub(available, used)
	if err != nil {
		return nil, err
	}

	hops, err := safemath.Add(intermediateCount, 1)
	if err != nil {
		return nil, err
	}

	return &PlanResult{
		Hops:             hops,
		Filler:           filler,
		FinalSize:        finalSize,
		IntermediateSize: intermediateSize,
	}, nil
}

// PlanIterative produces the same result as Plan by adding intermediate hops
// one at a time until the next one would exceed the budget.
func (p *Planner) PlanIterative(amt lnwire.MilliSatoshi, mpp bool,
	metadataLen uint64, extra []uint64) (*PlanResult, error) {

	final, intermediate := p.payloads(amt, mpp, metadataLen, extra)

	finalSize, err := final.Size()
	if err != nil {
		return nil, fmt.Errorf("final payload size: %w", err)
	}

	if finalSize > p.cfg.Budget {
		return &PlanResult{
			Filler:    p.cfg.Budget,
			FinalSize: finalSize,
		}, nil
	}

	intermediateSize, err := intermediate.Size()
	if err != nil {
		return nil, fmt.Errorf("intermediate payload size: %w", err)
	}

	var (
		hops uint64 = 1
		used        = finalSize
	)
	for p.cfg.Budget-used >= intermediateSize {
		used += intermediateSize
		hops++
	}

	return &PlanResult{
		Hops:             hops,
		Filler:           p.cfg.Budget - used,
		FinalSize:        finalSize,
		IntermediateSize: intermediateSize,
	}, nil
}
