package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// FormatCurrency formats a rupee amount with Indian digit grouping, e.g. ₹12,34,567
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "₹" + groupIndian(amount.Round(0).StringFixed(0))
}

// FormatCompact formats an amount in lakh or crore, e.g. ₹12.35L, ₹1.50Cr
func FormatCompact(amount decimal.Decimal) string {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return "₹" + amount.Div(crore).StringFixed(2) + "Cr"
	case abs.GreaterThanOrEqual(lakh):
		return "₹" + amount.Div(lakh).StringFixed(2) + "L"
	}
	return FormatCurrency(amount)
}

// FormatPercentage formats a percentage value
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// groupIndian inserts separators after the last three digits, then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
