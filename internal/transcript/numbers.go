package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	unitWords = map[string]int{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
		"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
		"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	}
	tensWords = map[string]int{
		"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
		"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	}

	compoundNumberPattern = regexp.MustCompile(`(?i)\b(twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)(?:[\s-]+(one|two|three|four|five|six|seven|eight|nine))?\b`)
	unitNumberPattern     = regexp.MustCompile(`(?i)\b(zero|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen)\b`)
	articleScalePattern   = regexp.MustCompile(`(?i)\ba\s+(hundred|thousand)\b`)
	hundredPattern        = regexp.MustCompile(`(?i)\b(\d+)\s+hundred\b`)
	thousandPattern       = regexp.MustCompile(`(?i)\b(\d+)\s+thousand\b(?:\s+(?:and\s+)?(\d{1,3})\b)?`)
)

// wordsToDigits replaces spelled-out numbers below one hundred with digits.
func wordsToDigits(text string) string {
	text = articleScalePattern.ReplaceAllString(text, "1 $1")
	text = compoundNumberPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := compoundNumberPattern.FindStringSubmatch(m)
		n := tensWords[strings.ToLower(sub[1])]
		if sub[2] != "" {
			n += unitWords[strings.ToLower(sub[2])]
		}
		return strconv.Itoa(n)
	})
	return unitNumberPattern.ReplaceAllStringFunc(text, func(m string) string {
		return strconv.Itoa(unitWords[strings.ToLower(m)])
	})
}

// expandScales turns "N hundred" into N00 and "N thousand [M]" into N000+M.
func expandScales(text string) string {
	text = hundredPattern.ReplaceAllString(text, "${1}00")
	return thousandPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := thousandPattern.FindStringSubmatch(m)
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			return m
		}
		total := n * 1000
		if sub[2] != "" {
			rest, err := strconv.Atoi(sub[2])
			if err != nil {
				return m
			}
			total += rest
		}
		return strconv.Itoa(total)
	})
}
