package rendering

import (
	"strings"

	"github.com/shopspring/decimal"
)

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

var (
	wordUnits    = []string{"", "یک", "دو", "سه", "چهار", "پنج", "شش", "هفت", "هشت", "نه"}
	wordTens     = []string{"", "ده", "بیست", "سی", "چهل", "پنجاه", "شصت", "هفتاد", "هشتاد", "نود"}
	wordHundreds = []string{"", "یکصد", "دویست", "سیصد", "چهارصد", "پانصد", "ششصد", "هفتصد", "هشتصد", "نهصد"}
	wordTeens    = map[int64]string{
		11: "یازده", 12: "دوازده", 13: "سیزده", 14: "چهارده",
		15: "پانزده", 16: "شانزده", 17: "هفده", 18: "هجده", 19: "نوزده",
	}
	wordScales = []string{"", "هزار", "میلیون", "میلیارد", "تریلیون"}
)

// ToPersianDigits replaces ASCII digits with their Persian equivalents,
// leaving every other rune untouched.
func ToPersianDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GroupDigits inserts thousands separators into a whole number's decimal
// representation.
func GroupDigits(n decimal.Decimal) string {
	s := n.Truncate(0).String()
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// FormatMoney renders a whole-rial amount with Persian digits and thousands
// separators, the way amounts appear on printed invoices.
func FormatMoney(n decimal.Decimal) string {
	return ToPersianDigits(GroupDigits(n))
}

// NumberToWords spells a non-negative whole amount out in Persian, used for
// the "amount in words" lines under the invoice totals.
func NumberToWords(n decimal.Decimal) string {
	value := n.Truncate(0)
	if value.IsZero() {
		return "صفر"
	}
	if value.IsNegative() {
		return "منفی " + NumberToWords(value.Neg())
	}

	// Split into three-digit groups, most significant first.
	thousand := decimal.NewFromInt(1000)
	var groups []int64
	for !value.IsZero() {
		groups = append([]int64{value.Mod(thousand).IntPart()}, groups...)
		value = value.Div(thousand).Truncate(0)
	}

	var parts []string
	for i, group := range groups {
		if group == 0 {
			continue
		}
		part := threeDigitsToWords(group)
		if idx := len(groups) - 1 - i; idx > 0 && idx < len(wordScales) {
			part += " " + wordScales[idx]
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, " و ")
}

func threeDigitsToWords(n int64) string {
	var parts []string

	if h := n / 100; h > 0 {
		parts = append(parts, wordHundreds[h])
	}

	rest := n % 100
	if teen, ok := wordTeens[rest]; ok {
		parts = append(parts, teen)
	} else {
		if t := rest / 10; t > 0 {
			parts = append(parts, wordTens[t])
		}
		if u := rest % 10; u > 0 {
			parts = append(parts, wordUnits[u])
		}
	}

	return strings.Join(parts, " و ")
}
