package job

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryPattern = regexp.MustCompile(`[0-9]+,?[0-9]*`)

// SalaryNumbers extracts every numeric token from a free-text salary string
// such as "$70,000 - $90,000". Extraction is lossy: a string without digits
// yields [0] so downstream min/max math always has something to work with.
func SalaryNumbers(s string) []int {
	tokens := salaryPattern.FindAllString(s, -1)
	if len(tokens) == 0 {
		return []int{0}
	}

	numbers := make([]int, 0, len(tokens))
	for _, token := range tokens {
		n, err := strconv.Atoi(strings.ReplaceAll(token, ",", ""))
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}

	if len(numbers) == 0 {
		return []int{0}
	}
	return numbers
}

// MaxSalary returns the largest numeric token of the salary string, 0 when
// none is present.
func MaxSalary(s string) int {
	max := 0
	for _, n := range SalaryNumbers(s) {
		if n > max {
			max = n
		}
	}
	return max
}

// MinSalary returns the smallest numeric token of the salary string, 0 when
// none is present.
func MinSalary(s string) int {
	numbers := SalaryNumbers(s)
	min := numbers[0]
	for _, n := range numbers[1:] {
		if n < min {
			min = n
		}
	}
	return min
}
