package stockledger

import "github.com/shopspring/decimal"

// The fee schedule. These are regulatory constants, not tunable knobs:
// changing them silently changes every cost basis in the ledger.
var (
	commissionRate  = decimal.NewFromFloat(0.0003)  // 0.03% commission, both sides
	minCommission   = decimal.NewFromInt(5)         // 5 yuan commission floor
	stampDutyRate   = decimal.NewFromFloat(0.001)   // 0.1% stamp duty, sell side only
	transferFeeRate = decimal.NewFromFloat(0.00002) // 0.002% transfer fee, both sides
)

// FeeBreakdown itemizes the fees of a single trade. All components are
// rounded to 2 decimal places, half away from zero; Total is rounded from
// the exact sum, not from the rounded components.
type FeeBreakdown struct {
	Commission  Money `json:"commission"`
	StampDuty   Money `json:"stampDuty"`
	TransferFee Money `json:"transferFee"`
	Total       Money `json:"total"`
}

// ComputeFees computes the fees for a trade of the given gross amount
// (quantity × price) and side.
func ComputeFees(amount Money, side TradeType) FeeBreakdown {
	commission, stampDuty, transferFee := rawFees(amount.value, side)
	total := commission.Add(stampDuty).Add(transferFee)
	return FeeBreakdown{
		Commission:  Money{value: commission.Round(2)},
		StampDuty:   Money{value: stampDuty.Round(2)},
		TransferFee: Money{value: transferFee.Round(2)},
		Total:       Money{value: total.Round(2)},
	}
}

// rawFees returns the unrounded fee components. The engines accumulate these
// exact values so that rounding error never compounds across a long history;
// only presented values go through Round.
func rawFees(amount decimal.Decimal, side TradeType) (commission, stampDuty, transferFee decimal.Decimal) {
	commission = amount.Mul(commissionRate)
	if commission.LessThan(minCommission) {
		commission = minCommission
	}
	if side == Sell {
		stampDuty = amount.Mul(stampDutyRate)
	}
	transferFee = amount.Mul(transferFeeRate)
	return commission, stampDuty, transferFee
}

// feeTotal returns the exact, unrounded fee total for a trade.
func feeTotal(amount Money, side TradeType) Money {
	commission, stampDuty, transferFee := rawFees(amount.value, side)
	return Money{value: commission.Add(stampDuty).Add(transferFee)}
}
