package billing

// ComputeTotal folds the rent, the two utility charges, other fees, ad-hoc
// line items and the discount into the payable invoice total. Every charge
// is clamped to >= 0, the discount can never push the total below zero, and
// the result is rounded to 2 decimals. Callers must treat the returned
// value as the only source of truth for the invoice total and re-derive it
// whenever any component changes.
func ComputeTotal(rent, water, electric, otherFees float64, items []InvoiceItem, discount float64) float64 {
	total := sanitize(rent) + sanitize(water) + sanitize(electric) + sanitize(otherFees)
	total += itemsSum(items)
	total -= sanitize(discount)
	if total < 0 {
		total = 0
	}
	return Round2(total)
}

// itemsSum adds the ad-hoc line items, clamping each amount like every
// other charge component. Unrounded; ComputeTotal rounds once at the end.
func itemsSum(items []InvoiceItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += sanitize(item.Amount)
	}
	return sum
}
