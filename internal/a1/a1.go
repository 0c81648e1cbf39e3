// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package a1 implements the bijection between (row, col) coordinates and
// A1-style spreadsheet addresses. Columns are base-26 with A=1, rows
// are 1-indexed.
package a1

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/latticesheet/sheetcore/internal/sheeterr"
)

// Format renders (row, col) -- zero-based -- as an uppercase A1 address.
// Negative coordinates are invalid and panic; callers must clamp first,
// since every coordinate-accepting operation clamps before this point.
func Format(row, col int) string {
	if row < 0 || col < 0 {
		panic(fmt.Sprintf("a1.Format: negative coordinate (%d, %d)", row, col))
	}
	return formatColumn(col) + strconv.Itoa(row+1)
}

// formatColumn renders a zero-based column index in base-26 "A, B, ...,
// Z, AA, ..." notation (A=1 in the 1-indexed sense once combined with the
// trailing digit re-mapping below).
func formatColumn(col int) string {
	n := col + 1 // work in 1-indexed base-26 terms
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}

// splitA1 splits s into its leading run of letters and trailing run of
// digits, validating the `^[A-Z]+[1-9][0-9]*$` shape against the
// uppercased input (lowercase is accepted and normalized).
func splitA1(s string) (letters, digits string, ok bool) {
	i := 0
	for i < len(s) && isAZ(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return "", "", false
	}
	letters = s[:i]
	digits = s[i:]
	if digits[0] == '0' {
		return "", "", false // leading zero: "A01" is not valid
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return "", "", false
		}
	}
	return letters, digits, true
}

func isAZ(b byte) bool { return b >= 'A' && b <= 'Z' }

// Parse parses an A1 address string into zero-based (row, col). Lowercase
// input is accepted and normalized. Returns sheeterr.ErrInvalidReference
// for any string not matching `^[A-Za-z]+[1-9][0-9]*$`.
func Parse(s string) (row, col int, err error) {
	upper := strings.ToUpper(s)
	letters, digits, ok := splitA1(upper)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", sheeterr.ErrInvalidReference, s)
	}
	col = parseColumn(letters)
	n, convErr := strconv.ParseUint(digits, 10, 64)
	if convErr != nil {
		return 0, 0, fmt.Errorf("%w: %q", sheeterr.ErrInvalidReference, s)
	}
	return int(n) - 1, col, nil
}

// parseColumn converts a base-26 column-letter run (A=1) into a zero-based
// column index.
func parseColumn(letters string) int {
	n := 0
	for i := 0; i < len(letters); i++ {
		n = n*26 + int(letters[i]-'A'+1)
	}
	return n - 1
}

// Valid reports whether s round-trips through Parse without error.
func Valid(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}
