package stockledger

import "testing"

func TestComputeFees(t *testing.T) {
	testCases := []struct {
		name   string
		amount float64
		side   TradeType
		want   FeeBreakdown
	}{
		{
			name:   "buy below commission floor",
			amount: 12500, // 12500 * 0.0003 = 3.75, floored to 5
			side:   Buy,
			want: FeeBreakdown{
				Commission:  M(5),
				StampDuty:   M(0),
				TransferFee: M(0.25),
				Total:       M(5.25),
			},
		},
		{
			name:   "sell pays stamp duty",
			amount: 12500,
			side:   Sell,
			want: FeeBreakdown{
				Commission:  M(5),
				StampDuty:   M(12.50),
				TransferFee: M(0.25),
				Total:       M(17.75),
			},
		},
		{
			name:   "buy above commission floor",
			amount: 20000, // 20000 * 0.0003 = 6
			side:   Buy,
			want: FeeBreakdown{
				Commission:  M(6),
				StampDuty:   M(0),
				TransferFee: M(0.40),
				Total:       M(6.40),
			},
		},
		{
			name:   "sell above commission floor",
			amount: 20000,
			side:   Sell,
			want: FeeBreakdown{
				Commission:  M(6),
				StampDuty:   M(20),
				TransferFee: M(0.40),
				Total:       M(26.40),
			},
		},
		{
			name:   "commission just above the floor",
			amount: 16666.67, // 16666.67 * 0.0003 = 5.000001
			side:   Buy,
			want: FeeBreakdown{
				Commission:  M(5),
				StampDuty:   M(0),
				TransferFee: M(0.33), // 0.3333334
				Total:       M(5.33), // 5.3333344 rounded, not 5 + 0.33
			},
		},
		{
			name: "total rounds the exact sum, not the rounded components",
			// commission 5.004999 -> 5.00, stamp 16.68333 -> 16.68,
			// transfer 0.3336666 -> 0.33. Component sum would be 22.01,
			// but the exact sum 22.0219956 rounds to 22.02.
			amount: 16683.33,
			side:   Sell,
			want: FeeBreakdown{
				Commission:  M(5),
				StampDuty:   M(16.68),
				TransferFee: M(0.33),
				Total:       M(22.02),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeFees(M(tc.amount), tc.side)
			if !got.Commission.Equal(tc.want.Commission) {
				t.Errorf("Commission = %s, want %s", got.Commission, tc.want.Commission)
			}
			if !got.StampDuty.Equal(tc.want.StampDuty) {
				t.Errorf("StampDuty = %s, want %s", got.StampDuty, tc.want.StampDuty)
			}
			if !got.TransferFee.Equal(tc.want.TransferFee) {
				t.Errorf("TransferFee = %s, want %s", got.TransferFee, tc.want.TransferFee)
			}
			if !got.Total.Equal(tc.want.Total) {
				t.Errorf("Total = %s, want %s", got.Total, tc.want.Total)
			}
		})
	}
}

func TestTransactionNetAmount(t *testing.T) {
	buy := Transaction{Type: Buy, Quantity: Q(1000), Price: M(12.50)}
	// 12500 + 5 + 0.25 = 12505.25
	if got := buy.NetAmount(); !got.Equal(M(12505.25)) {
		t.Errorf("buy NetAmount = %s, want %s", got, M(12505.25))
	}

	sell := Transaction{Type: Sell, Quantity: Q(1000), Price: M(12.50)}
	// 12500 - (5 + 12.50 + 0.25) = 12482.25
	if got := sell.NetAmount(); !got.Equal(M(12482.25)) {
		t.Errorf("sell NetAmount = %s, want %s", got, M(12482.25))
	}
}
