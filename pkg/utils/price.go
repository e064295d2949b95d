package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	currencyMarks = strings.NewReplacer("$", "", "₹", "", "€", "", "£", "", ",", "", " ", "")
	arabicDigits  = strings.NewReplacer("٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4", "٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9", "٫", ".")
)

func parseNumber(s string) (float64, bool) {
	clean := strings.TrimSpace(currencyMarks.Replace(arabicDigits.Replace(s)))
	if clean == "" {
		return 0, false
	}

	match := numberPattern.FindString(clean)
	if match == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePrice converts price string to float64
func ParsePrice(priceStr string) float64 {
	price, ok := parseNumber(priceStr)
	if !ok || price < 0 {
		return 0
	}
	return price
}

// ParseRating converts rating string to float64
func ParseRating(ratingStr string) float64 {
	// "4.5 out of 5 stars" -> 4.5
	rating, ok := parseNumber(ratingStr)
	if !ok || rating < 0 {
		return 0
	}
	return rating
}

// ParseBound parses a numeric filter bound typed by a user, returning def
// when nothing numeric can be extracted.
func ParseBound(raw string, def float64) float64 {
	n, ok := parseNumber(raw)
	if !ok {
		return def
	}
	return n
}
