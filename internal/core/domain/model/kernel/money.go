package kernel

// Money is a monetary amount expressed in the smallest currency unit of the
// deployment. Totals are always integer arithmetic; floating point is never
// used for monetary values.
type Money int64

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}
