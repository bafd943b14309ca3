package bank

import "testing"

func TestRounding(t *testing.T) {
	assertDecimal(t, "0.13", roundMoney(dec("0.125")))
	assertDecimal(t, "0.12", roundMoney(dec("0.1249999")))
	assertDecimal(t, "0.0166666667", annualToMonthly(dec("20")))
	assertDecimal(t, "0.0005479452", annualToDaily(dec("20")))
}
