package scraper

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// amountRe matches a number followed by a hryvnia marker. Digit groups may be
// separated by regular, no-break or narrow no-break spaces, never by newlines,
// so amounts on adjacent lines are not glued together.
var amountRe = regexp.MustCompile(`(?i)(\d[\d \x{00A0}\x{202F}.,]*)[ \x{00A0}\x{202F}]*(?:₴|грн)`)

var spaceStripper = strings.NewReplacer(" ", "", " ", "", " ", "")

// ParseAmounts returns every positive finite amount found next to a currency marker, in page order.
func ParseAmounts(text string) []float64 {
	matches := amountRe.FindAllStringSubmatch(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		raw := strings.Replace(spaceStripper.Replace(m[1]), ",", ".", 1)
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ExtractAmounts reads balance and goal from the visible text of a public jar page.
//
// This is a layout heuristic, not a contract: the smallest amount is taken as the
// balance and the largest as the goal. A single amount is the balance with no goal;
// no amounts yield a zero balance.
func ExtractAmounts(text string) (balance int64, goal *int64) {
	nums := ParseAmounts(text)
	switch len(nums) {
	case 0:
		return 0, nil
	case 1:
		return int64(math.Round(nums[0])), nil
	}

	sort.Float64s(nums)
	g := int64(math.Round(nums[len(nums)-1]))
	return int64(math.Round(nums[0])), &g
}
