package legal

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountPatterns are tried in order and the first one that yields a number wins,
// even when a later pattern would match a more specific span.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:млн|миллион)`),
	regexp.MustCompile(`(\d+)\s*(?:тысяч|тыс)`),
	regexp.MustCompile(`(\d+)\s*(?:рублей|руб)`),
	regexp.MustCompile(`от\s*(\d+)\s*до\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*(?:000|к)`),
	regexp.MustCompile(`до\s*(\d+)\s*(?:млн|миллион)`),
	regexp.MustCompile(`свыше\s*(\d+)`),
	regexp.MustCompile(`более\s*(\d+)`),
}

// ExtractAmount returns the first monetary amount found in query, in rubles.
func ExtractAmount(query string) (int64, bool) {
	if !validQuery(query) {
		return 0, false
	}
	lower := strings.ToLower(query)

	for _, re := range amountPatterns {
		m := re.FindStringSubmatchIndex(lower)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(lower[m[2]:m[3]], 10, 64)
		if err != nil {
			continue
		}
		// Only the unit after the last captured number counts, so digits
		// such as "2000000" never read as a "000" suffix.
		last := m[len(m)-1]
		scale := unitScale(lower[last:m[1]])
		if n > math.MaxInt64/scale {
			continue
		}
		return n * scale, true
	}
	return 0, false
}

func unitScale(unit string) int64 {
	switch {
	case strings.Contains(unit, "млн"), strings.Contains(unit, "миллион"):
		return 1_000_000
	case strings.Contains(unit, "тысяч"), strings.Contains(unit, "тыс"), strings.Contains(unit, "000"):
		return 1_000
	default:
		return 1
	}
}
