package domain

// DepreciationModel describes value decay for a (powertrain, segment)
// combination: annual decay compounded by age, distance decay compounded
// per 10,000 km, with a residual floor as a fraction of the base value.
type DepreciationModel struct {
	ID             string
	Powertrain     Powertrain
	Segment        string
	BaseValueEUR   float64
	AnnualRate     float64 // e.g. 0.12 = 12% per year
	KmRate         float64 // e.g. 0.02 = 2% per 10,000 km
	MinResidualPct float64 // residual never falls below BaseValueEUR * this
}
