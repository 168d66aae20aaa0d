package rental

import (
	"github.com/ethereum/go-ethereum/metrics"
)

// Engine metrics, registered on the default registry. Enabled/disabled
// globally through the go-ethereum metrics switch, same as the rest of the
// stack.
var (
	// aggregateGauge tracks the aggregate occupancy counter (seconds).
	aggregateGauge = metrics.NewRegisteredGauge("landrental/aggregate", nil)

	// activeIntervalsGauge tracks the number of intervals with a non-zero
	// end date (active or expired-but-uncollected).
	activeIntervalsGauge = metrics.NewRegisteredGauge("landrental/intervals", nil)

	// rentalsMeter counts freshly rented tokens.
	rentalsMeter = metrics.NewRegisteredMeter("landrental/rentals/new", nil)

	// extensionsMeter counts extended rentals.
	extensionsMeter = metrics.NewRegisteredMeter("landrental/rentals/extended", nil)

	// collectionsMeter counts reclaimed (burned) tokens.
	collectionsMeter = metrics.NewRegisteredMeter("landrental/collections", nil)

	// feesMeter accumulates charged fees in points. Fees beyond int64 are
	// not marked; the meter is operational telemetry, not accounting.
	feesMeter = metrics.NewRegisteredMeter("landrental/fees", nil)
)
