package ai

import (
	"fmt"
	"strings"

	"holdem-engine/pkg/card"
)

// RangeSet is a set of starting-hand notations (e.g. "AKs", "TT", "A2o"),
// built from the chart range syntax spec.md §4.7 describes: direct hands,
// "+" open-ended extensions, and "-" bounded ranges.
type RangeSet struct {
	hands map[string]bool
}

// Contains reports whether the given hole cards fall within the range.
func (rs *RangeSet) Contains(a, b card.Card) bool {
	if rs == nil {
		return false
	}
	return rs.hands[HoleNotation(a, b)]
}

// ContainsCode reports whether the literal starting-hand code is in range.
func (rs *RangeSet) ContainsCode(code string) bool {
	if rs == nil {
		return false
	}
	return rs.hands[code]
}

func newRangeSet() *RangeSet {
	return &RangeSet{hands: make(map[string]bool)}
}

func (rs *RangeSet) add(c handCode) {
	rs.hands[c.String()] = true
}

// ParseRange parses a comma-separated chart expression such as
// "77+,ATs+,KQs,AJo+" into a RangeSet.
func ParseRange(expr string) (*RangeSet, error) {
	rs := newRangeSet()
	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if err := addToken(rs, tok); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// MustParseRange panics on a malformed expression; used only for the
// package's own built-in chart tables, never on external input.
func MustParseRange(expr string) *RangeSet {
	rs, err := ParseRange(expr)
	if err != nil {
		panic(err)
	}
	return rs
}

func addToken(rs *RangeSet, tok string) error {
	if strings.HasSuffix(tok, "+") {
		return addPlusToken(rs, strings.TrimSuffix(tok, "+"))
	}
	if idx := strings.Index(tok, "-"); idx > 0 {
		return addDashToken(rs, tok[:idx], tok[idx+1:])
	}
	code, err := parseHandCode(tok)
	if err != nil {
		return err
	}
	rs.add(code)
	return nil
}

// addPlusToken handles "66+" (all pairs at or above 66) and "A2s+" /
// "K9o+" (kicker extended up to, but not including, the top rank).
func addPlusToken(rs *RangeSet, base string) error {
	code, err := parseHandCode(base)
	if err != nil {
		return err
	}
	if code.pair {
		for r := code.hi; r <= card.Ace; r++ {
			rs.add(handCode{hi: r, lo: r, pair: true})
		}
		return nil
	}
	for lo := code.lo; lo < code.hi; lo++ {
		rs.add(handCode{hi: code.hi, lo: lo, suited: code.suited})
	}
	return nil
}

// addDashToken handles bounded ranges: "AA-22" (all pairs between the two
// bounds) and "AKs-A2s" (same high card, kicker ranging between bounds).
func addDashToken(rs *RangeSet, left, right string) error {
	lc, err := parseHandCode(left)
	if err != nil {
		return err
	}
	rc, err := parseHandCode(right)
	if err != nil {
		return err
	}
	if lc.pair != rc.pair {
		return fmt.Errorf("ai: mismatched range bounds %q-%q", left, right)
	}
	if lc.pair {
		lo, hi := lc.hi, rc.hi
		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo; r <= hi; r++ {
			rs.add(handCode{hi: r, lo: r, pair: true})
		}
		return nil
	}
	if lc.hi != rc.hi || lc.suited != rc.suited {
		return fmt.Errorf("ai: mismatched range bounds %q-%q", left, right)
	}
	lo, hi := lc.lo, rc.lo
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo; r <= hi; r++ {
		rs.add(handCode{hi: lc.hi, lo: r, suited: lc.suited})
	}
	return nil
}
