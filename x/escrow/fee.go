package escrow

// DefaultFeePercent is the fee recorded on every new escrow. It is never
// charged, Take pays the whole price to the maker.
const DefaultFeePercent uint8 = 5

// FeeAmount returns floor(price * feePercent / 100) without overflowing for
// any price.
func FeeAmount(price uint64, feePercent uint8) uint64 {
	p := uint64(feePercent)
	return price/100*p + price%100*p/100
}
