package ridership

type Options struct {
	Schema   Schema
	Lookback LookbackMode
}

// Transform runs the full pipeline over a loaded table: column normalisation,
// route canonicalisation, period indexing, aggregation and metric derivation.
// The first failing stage aborts the run and no partial dataset is returned.
func Transform(table *Table, options Options) (*Dataset, error) {
	normalised := NormaliseColumns(table)

	canonical, err := CanonicaliseRoutes(normalised)
	if err != nil {
		return nil, err
	}

	periods, err := IndexPeriods(canonical)
	if err != nil {
		return nil, err
	}

	aggregation, err := Aggregate(canonical, periods, options.Schema)
	if err != nil {
		return nil, err
	}

	return DeriveMetrics(aggregation, options.Lookback)
}
