// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package a1

import (
	"strings"
	"testing"

	"github.com/latticesheet/sheetcore/internal/cellmodel"
	"github.com/latticesheet/sheetcore/internal/sheeterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBasic(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{0, 25, "Z1"},
		{0, 26, "AA1"},
		{9, 27, "AB10"},
		{0, 701, "ZZ1"},
		{0, 702, "AAA1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.row, tt.col))
	}
}

func TestParseBasic(t *testing.T) {
	tests := []struct {
		in       string
		row, col int
	}{
		{"A1", 0, 0},
		{"Z1", 0, 25},
		{"AA1", 0, 26},
		{"AB10", 9, 27},
		{"a1", 0, 0}, // lowercase normalized
	}
	for _, tt := range tests {
		row, col, err := Parse(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.row, row)
		assert.Equal(t, tt.col, col)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "1A", "A0", "A01", "A", "1", "A1B", "A-1", "A 1", "AA"} {
		_, _, err := Parse(in)
		assert.ErrorIs(t, err, sheeterr.ErrInvalidReference, "input %q", in)
	}
}

func TestRoundTripFullValidRange(t *testing.T) {
	for _, rc := range [][2]int{
		{0, 0}, {1, 1}, {cellmodel.MaxRow, cellmodel.MaxCol},
		{500, 500}, {0, cellmodel.MaxCol}, {cellmodel.MaxRow, 0},
	} {
		s := Format(rc[0], rc[1])
		row, col, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, rc[0], row)
		assert.Equal(t, rc[1], col)
	}
}

func TestUnformatOfParseIsUppercase(t *testing.T) {
	for _, s := range []string{"a1", "aB10", "zz99"} {
		row, col, err := Parse(s)
		require.NoError(t, err)
		got := Format(row, col)
		assert.Equal(t, strings.ToUpper(s), got)
		assert.Regexp(t, `^[A-Z]+[1-9][0-9]*$`, got)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("A1"))
	assert.False(t, Valid("1A"))
}
