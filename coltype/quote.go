package coltype

import "slices"

// QuoteString appends str to dst as a single-quoted SQL string literal. Every ' is doubled. When doublePercents is
// true every % is doubled as well; that step is applied to the already quote-escaped text. No other byte is changed.
func QuoteString(dst []byte, str string, doublePercents bool) []byte {
	const quote = '\''
	const percent = '%'

	extra := 0
	for i := 0; i < len(str); i++ {
		if str[i] == quote || (doublePercents && str[i] == percent) {
			extra++
		}
	}

	dst = slices.Grow(dst, len(str)+extra+2)
	dst = append(dst, quote)
	for i := 0; i < len(str); i++ {
		switch {
		case str[i] == quote:
			dst = append(dst, quote, quote)
		case doublePercents && str[i] == percent:
			dst = append(dst, percent, percent)
		default:
			dst = append(dst, str[i])
		}
	}
	dst = append(dst, quote)

	return dst
}
