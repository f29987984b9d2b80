package hands

import (
	"sort"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
)

// Evaluate classifies the selected cards into the strongest matching hand.
// Returns nil for an empty selection. The caller enforces the 5 card cap.
//
// Selection is deterministic: rank values are examined from highest to lowest,
// suits in cards.Suits order, and within a rank value cards are taken in the
// order the caller supplied them.
func Evaluate(selected []cards.Card) *Result {
	if len(selected) == 0 {
		return nil
	}

	groups := groupByValue(selected)
	values := descendingValues(groups)

	if flushCards := findFlush(selected); flushCards != nil {
		if run := findStraight(flushCards); run != nil {
			if run[0].OrderValue() == cards.Ace.Value() && run[1].OrderValue() == cards.King.Value() {
				return newResult(RoyalFlush, run)
			}
			return newResult(StraightFlush, run)
		}
	}

	if v, ok := firstWithCount(values, groups, 4, 0); ok {
		return newResult(FourOfAKind, groups[v][:4])
	}

	if trip, ok := firstWithCount(values, groups, 3, 0); ok {
		if pair, ok := firstWithCount(values, groups, 2, trip); ok {
			constituent := append(clone(groups[trip][:3]), groups[pair][:2]...)
			return newResult(FullHouse, constituent)
		}
	}

	if flushCards := findFlush(selected); flushCards != nil {
		return newResult(Flush, flushCards[:5])
	}

	if run := findStraight(selected); run != nil {
		return newResult(Straight, run)
	}

	if v, ok := firstWithCount(values, groups, 3, 0); ok {
		return newResult(ThreeOfAKind, groups[v][:3])
	}

	if high, ok := firstWithCount(values, groups, 2, 0); ok {
		if low, ok := firstWithCount(values, groups, 2, high); ok {
			constituent := append(clone(groups[high][:2]), groups[low][:2]...)
			return newResult(TwoPair, constituent)
		}
		return newResult(Pair, groups[high][:2])
	}

	return newResult(HighCard, groups[values[0]][:1])
}

func newResult(rank HandRank, constituent []cards.Card) *Result {
	c := clone(constituent)
	return &Result{
		Rank:           rank,
		Cards:          c,
		BaseChips:      rank.BaseChips(),
		BaseMultiplier: rank.BaseMultiplier(),
		Description:    describe(rank, c),
	}
}

// groupByValue buckets cards by order value, keeping caller order within a bucket
func groupByValue(selected []cards.Card) map[int][]cards.Card {
	groups := make(map[int][]cards.Card)
	for _, c := range selected {
		v := c.OrderValue()
		groups[v] = append(groups[v], c)
	}
	return groups
}

func descendingValues(groups map[int][]cards.Card) []int {
	values := make([]int, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}

// firstWithCount returns the highest value with at least n cards, skipping exclude
func firstWithCount(values []int, groups map[int][]cards.Card, n, exclude int) (int, bool) {
	for _, v := range values {
		if v != exclude && len(groups[v]) >= n {
			return v, true
		}
	}
	return 0, false
}

// findFlush returns the cards of the first suit holding five or more cards
func findFlush(selected []cards.Card) []cards.Card {
	for _, suit := range cards.Suits {
		var suited []cards.Card
		for _, c := range selected {
			if c.Suit == suit {
				suited = append(suited, c)
			}
		}
		if len(suited) >= 5 {
			return suited
		}
	}
	return nil
}

// findStraight returns the highest run of five consecutive values, highest card
// first. ACE also plays low beneath TWO.
func findStraight(selected []cards.Card) []cards.Card {
	first := make(map[int]cards.Card)
	for _, c := range selected {
		v := c.OrderValue()
		if _, ok := first[v]; !ok {
			first[v] = c
		}
	}
	if ace, ok := first[cards.Ace.Value()]; ok {
		first[1] = ace
	}

	for high := cards.Ace.Value(); high >= 5; high-- {
		run := make([]cards.Card, 0, 5)
		for v := high; v > high-5; v-- {
			c, ok := first[v]
			if !ok {
				break
			}
			run = append(run, c)
		}
		if len(run) == 5 {
			return run
		}
	}
	return nil
}

func clone(in []cards.Card) []cards.Card {
	out := make([]cards.Card, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
