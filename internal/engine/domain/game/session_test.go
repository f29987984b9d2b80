package game

import (
	"encoding/json"
	"testing"

	"github.com/anhbaysgalan1/balatro/internal/engine/domain/cards"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/events"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/hands"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/jokers"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/progression"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/shop"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/tarots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hc(id string, s cards.Suit, r cards.Rank, e ...cards.Enhancement) cards.Card {
	if e == nil {
		e = []cards.Enhancement{}
	}
	return cards.Card{ID: id, Suit: s, Rank: r, Enhancements: e}
}

// fullHouseHand holds 3-3-3-7-7 plus three loose cards
func fullHouseHand() []cards.Card {
	return []cards.Card{
		hc("s3", cards.Spades, cards.Three), hc("h3", cards.Hearts, cards.Three),
		hc("c3", cards.Clubs, cards.Three), hc("s7", cards.Spades, cards.Seven),
		hc("h7", cards.Hearts, cards.Seven), hc("d2", cards.Diamonds, cards.Two),
		hc("d9", cards.Diamonds, cards.Nine), hc("ck", cards.Clubs, cards.King),
	}
}

var fullHouse = []string{"s3", "h3", "c3", "s7", "h7"}

// restDeck is a standard deck minus the suit/rank pairs already in hand
func restDeck(hand []cards.Card) []cards.Card {
	type key struct {
		s cards.Suit
		r cards.Rank
	}
	held := make(map[key]bool)
	for _, c := range hand {
		held[key{c.Suit, c.Rank}] = true
	}
	var rest []cards.Card
	for _, c := range cards.NewStandardDeck().Cards() {
		if !held[key{c.Suit, c.Rank}] {
			rest = append(rest, c)
		}
	}
	return rest
}

func openingDoc(hand []cards.Card) Document {
	return Document{
		UserID:               "player-1",
		Seed:                 "fixed-seed",
		CurrentBlind:         1,
		CurrentAnte:          1,
		Money:                50,
		Lives:                3,
		HandsLeft:            4,
		DiscardsLeft:         3,
		NoLivesLostThisRound: true,
		DeckCards:            restDeck(hand),
		HandCards:            hand,
	}
}

func restore(t *testing.T, doc Document) *Session {
	t.Helper()
	s, err := Restore(doc)
	require.NoError(t, err)
	return s
}

func ownedCount(s *Session) int {
	return s.DeckSize() + len(s.Hand()) + len(s.DiscardPile())
}

func TestNewSession(t *testing.T) {
	s := NewSession("player-1", "abc")
	assert.Len(t, s.Hand(), HandSize)
	assert.Equal(t, 52-HandSize, s.DeckSize())
	assert.Equal(t, "abc", s.Seed)

	p := s.Progress()
	assert.Equal(t, 4, p.HandsLeft)
	assert.Equal(t, 3, p.DiscardsLeft)
	assert.Equal(t, int64(300), p.BlindTarget)

	changes := s.GetUncommittedChanges()
	require.Len(t, changes, 1)
	assert.Equal(t, events.RunStartedEvent, changes[0].GetEventType())

	// same seed, same deal
	again := NewSession("player-1", "abc")
	for i, c := range s.Hand() {
		other := again.Hand()[i]
		assert.Equal(t, c.Suit, other.Suit)
		assert.Equal(t, c.Rank, other.Rank)
	}

	assert.NotEmpty(t, NewSession("player-1", "").Seed)
}

func TestPlayHand_FullHouseScenario(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))

	result, err := s.PlayHand(fullHouse)
	require.NoError(t, err)

	assert.Equal(t, hands.FullHouse, result.Hand.Rank)
	assert.Equal(t, 63, result.Score.Chips)
	assert.Equal(t, 4, result.Score.Multiplier)
	assert.Equal(t, int64(252), result.Score.TotalScore)
	assert.Equal(t, progression.PlayingBlind, result.Outcome)
	assert.Equal(t, 3, result.State.HandsLeft)
	assert.Equal(t, int64(252), result.State.CurrentScore)
	assert.Equal(t, 55, result.State.Money)
	assert.Len(t, result.Drawn, 5)

	assert.Len(t, s.Hand(), HandSize)
	assert.Len(t, s.DiscardPile(), 5)
	assert.Equal(t, 52, ownedCount(s))
}

func TestPlayHand_InvalidSelections(t *testing.T) {
	hand := fullHouseHand()
	hand[7] = hc("stone", cards.Clubs, cards.King, cards.Stone)
	s := restore(t, openingDoc(hand))

	cases := map[string][]string{
		"empty":     {},
		"too many":  {"s3", "h3", "c3", "s7", "h7", "d2"},
		"not held":  {"nope"},
		"duplicate": {"s3", "s3"},
		"stone":     {"stone", "s3"},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.PlayHand(ids)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
	assert.Equal(t, 4, s.Progress().HandsLeft)
	assert.Len(t, s.Hand(), HandSize)

	// stone cards may still be discarded
	_, err := s.Discard([]string{"stone"})
	assert.NoError(t, err)
}

func TestPlayHand_CompletesBlind(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.CurrentScore = 290
	s := restore(t, doc)

	result, err := s.PlayHand(fullHouse)
	require.NoError(t, err)
	assert.Equal(t, progression.BlindCompleted, result.Outcome)
	assert.False(t, result.ShopOpened)

	p := s.Progress()
	assert.Equal(t, 2, p.CurrentBlind)
	assert.Equal(t, progression.Big, p.BlindType)
	assert.Equal(t, int64(0), p.CurrentScore)
	assert.Equal(t, 50+5+progression.BlindReward, p.Money)
	assert.Equal(t, 4, p.HandsLeft)

	assert.Len(t, s.Hand(), HandSize)
	assert.Empty(t, s.DiscardPile())
	assert.Equal(t, 52, ownedCount(s))
}

func TestPlayHand_BossOpensShop(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.CurrentBlind = 3
	doc.CurrentScore = 599
	s := restore(t, doc)

	result, err := s.PlayHand(fullHouse)
	require.NoError(t, err)
	assert.True(t, result.ShopOpened)
	assert.True(t, s.ShopOpen())
	assert.Len(t, s.Shop(), shop.OfferSize)
	assert.Equal(t, 2, s.Progress().CurrentAnte)

	s.LeaveShop()
	assert.False(t, s.ShopOpen())
}

func TestPlayHand_LifeLostAndGameOver(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.HandsLeft = 1
	doc.CurrentScore = 20
	s := restore(t, doc)

	result, err := s.PlayHand([]string{"d2"})
	require.NoError(t, err)
	assert.Equal(t, progression.LifeLost, result.Outcome)

	p := s.Progress()
	assert.Equal(t, 2, p.Lives)
	assert.Equal(t, 4, p.HandsLeft)
	assert.Equal(t, int64(27), p.CurrentScore)
	assert.False(t, p.NoLivesLostThisRound)
	assert.Len(t, s.Hand(), HandSize)

	doc = openingDoc(fullHouseHand())
	doc.HandsLeft = 1
	doc.Lives = 1
	s = restore(t, doc)
	result, err = s.PlayHand([]string{"d2"})
	require.NoError(t, err)
	assert.Equal(t, progression.GameOver, result.Outcome)
	assert.True(t, s.IsOver())

	changes := s.GetUncommittedChanges()
	assert.Equal(t, events.GameOverEvent, changes[len(changes)-1].GetEventType())

	_, err = s.PlayHand([]string{"d9"})
	assert.ErrorIs(t, err, progression.ErrGameOver)
}

func TestDiscard(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))

	drawn, err := s.Discard([]string{"d2", "d9"})
	require.NoError(t, err)
	assert.Len(t, drawn, 2)
	assert.Equal(t, 2, s.Progress().DiscardsLeft)
	assert.Len(t, s.Hand(), HandSize)
	assert.Len(t, s.DiscardPile(), 2)

	for i := 0; i < 2; i++ {
		_, err = s.Discard([]string{s.Hand()[0].ID})
		require.NoError(t, err)
	}
	_, err = s.Discard([]string{s.Hand()[0].ID})
	assert.ErrorIs(t, err, progression.ErrNoDiscardsLeft)
}

func TestDiscard_JugglerAddsDiscardNextBlind(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.CurrentScore = 290
	s := restore(t, doc)

	juggler, err := jokers.New("juggler")
	require.NoError(t, err)
	require.True(t, s.AddJoker(juggler, "shop"))

	_, err = s.PlayHand(fullHouse)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Progress().DiscardsLeft)
	assert.Equal(t, []string{"juggler"}, s.JokersUsed())
}

func TestUseTarot(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))
	strength, err := tarots.New("strength")
	require.NoError(t, err)
	s.AddTarot(strength)

	// no target: not consumed
	ok, err := s.UseTarot(0, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"strength"}, s.Tarots())

	ok, err = s.UseTarot(0, "ck")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, s.Tarots())
	for _, c := range s.Hand() {
		if c.ID == "ck" {
			assert.True(t, c.HasEnhancement(cards.Steel))
		}
	}

	_, err = s.UseTarot(0, "ck")
	assert.ErrorIs(t, err, tarots.ErrNoSuchTarot)

	s.AddTarot(strength)
	_, err = s.UseTarot(0, "ghost")
	assert.ErrorIs(t, err, ErrNoSuchCard)
}

func TestUseTarot_EmperorTouchesDeckOnly(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))
	emperor, _ := tarots.New("emperor")
	s.AddTarot(emperor)

	ok, err := s.UseTarot(0, "")
	require.NoError(t, err)
	assert.True(t, ok)
	for _, c := range s.DeckCards() {
		assert.True(t, c.HasEnhancement(cards.BonusChip1))
	}
	for _, c := range s.Hand() {
		assert.False(t, c.HasEnhancement(cards.BonusChip1))
	}
}

func TestUseTarot_HermitRemovesHandCard(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))
	hermit, err := tarots.New("hermit")
	require.NoError(t, err)
	s.AddTarot(hermit)

	ok, err := s.UseTarot(0, "ck")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, s.Tarots())
	assert.Equal(t, 51, ownedCount(s))
	for _, c := range s.Hand() {
		assert.NotEqual(t, "ck", c.ID)
	}
}

func TestUseTarot_HermitKeepsLookalikeDeckCard(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))
	magician, _ := tarots.New("magician")
	hermit, _ := tarots.New("hermit")
	s.AddTarot(magician)
	s.AddTarot(hermit)

	// king of clubs becomes the ace of clubs still sitting in the deck
	ok, err := s.UseTarot(0, "ck")
	require.NoError(t, err)
	require.True(t, ok)

	deckAces := func() int {
		n := 0
		for _, c := range s.DeckCards() {
			if c.Suit == cards.Clubs && c.Rank == cards.Ace {
				n++
			}
		}
		return n
	}
	require.Equal(t, 1, deckAces())

	ok, err = s.UseTarot(0, "ck")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, deckAces())
	assert.Equal(t, 51, ownedCount(s))
	for _, c := range s.Hand() {
		assert.NotEqual(t, "ck", c.ID)
	}
}

func TestAddJoker_Capacity(t *testing.T) {
	s := NewSession("player-1", "cap")
	for i := 0; i < jokers.MaxJokers; i++ {
		j, _ := jokers.New("red_card")
		assert.True(t, s.AddJoker(j, "test"))
	}
	j, _ := jokers.New("juggler")
	assert.False(t, s.AddJoker(j, "test"))
	assert.Len(t, s.Jokers(), jokers.MaxJokers)
	assert.Equal(t, []string{"red_card"}, s.JokersUsed())
}

func TestSellAndToggleJoker(t *testing.T) {
	s := NewSession("player-1", "sell")
	j, _ := jokers.New("fibonacci")
	s.AddJoker(j, "test")

	require.NoError(t, s.ToggleJoker(0))
	assert.False(t, s.Jokers()[0].IsActive)
	assert.ErrorIs(t, s.ToggleJoker(4), ErrNoSuchJoker)

	value, err := s.SellJoker(0)
	require.NoError(t, err)
	assert.Equal(t, 8, value)
	assert.Equal(t, 58, s.Progress().Money)

	_, err = s.SellJoker(0)
	assert.ErrorIs(t, err, ErrNoSuchJoker)
}

func TestBuy(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.Shop = []shop.Item{
		{Kind: shop.KindJoker, ID: "greedy_joker", Name: "Greedy Joker", Price: 7},
		{Kind: shop.KindPlanet, ID: "mercury", Name: "Mercury", Price: shop.PlanetPrice},
		{Kind: shop.KindTarot, ID: "wheel", Name: "Wheel of Fortune", Price: shop.TarotPrice},
		{Kind: shop.KindPack, ID: "celestial_pack", Name: "Celestial Pack", Price: shop.PackPrice},
		{Kind: shop.KindJoker, ID: "perfectionist", Name: "Perfectionist", Price: 100},
	}
	s := restore(t, doc)
	require.True(t, s.ShopOpen())

	purchase, err := s.Buy(0)
	require.NoError(t, err)
	assert.Equal(t, "greedy_joker", purchase.Item.ID)
	assert.Equal(t, 43, s.Progress().Money)
	assert.Len(t, s.Jokers(), 1)

	_, err = s.Buy(0)
	assert.ErrorIs(t, err, shop.ErrNoSuchItem)

	_, err = s.Buy(1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.PlanetLevels()["Pair"])

	_, err = s.Buy(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"wheel"}, s.Tarots())

	purchase, err = s.Buy(3)
	require.NoError(t, err)
	assert.Len(t, purchase.Granted, 4)
	total := 0
	for _, level := range s.PlanetLevels() {
		total += level
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 43-13-8-10, s.Progress().Money)

	_, err = s.Buy(4)
	assert.ErrorIs(t, err, progression.ErrInsufficientFunds)
	assert.Equal(t, 12, s.Progress().Money)

	_, err = s.Buy(9)
	assert.ErrorIs(t, err, shop.ErrNoSuchItem)
}

func TestBuy_JokerSlotsFullKeepsMoney(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.Shop = []shop.Item{{Kind: shop.KindJoker, ID: "juggler", Price: 5}}
	s := restore(t, doc)
	for i := 0; i < jokers.MaxJokers; i++ {
		j, _ := jokers.New("red_card")
		s.AddJoker(j, "test")
	}

	_, err := s.Buy(0)
	assert.ErrorIs(t, err, shop.ErrJokerSlotsFull)
	assert.Equal(t, 50, s.Progress().Money)
	assert.False(t, s.Shop()[0].Sold)

	_, err = NewSession("p", "closed").Buy(0)
	assert.ErrorIs(t, err, shop.ErrShopClosed)
}

func TestRerollShop(t *testing.T) {
	doc := openingDoc(fullHouseHand())
	doc.Shop = []shop.Item{{Kind: shop.KindTarot, ID: "fool", Price: 8}}
	s := restore(t, doc)

	require.NoError(t, s.RerollShop())
	assert.Len(t, s.Shop(), shop.OfferSize)
	assert.Equal(t, 45, s.Progress().Money)

	s.LeaveShop()
	assert.ErrorIs(t, s.RerollShop(), shop.ErrShopClosed)
}

func TestGlassCardsMayShatter(t *testing.T) {
	hand := []cards.Card{
		hc("g1", cards.Spades, cards.Two, cards.Glass), hc("g2", cards.Hearts, cards.Four, cards.Glass),
		hc("g3", cards.Clubs, cards.Six, cards.Glass), hc("g4", cards.Diamonds, cards.Eight, cards.Glass),
		hc("g5", cards.Spades, cards.Ten, cards.Glass), hc("x1", cards.Hearts, cards.Queen),
		hc("x2", cards.Clubs, cards.Ace), hc("x3", cards.Diamonds, cards.King),
	}
	doc := openingDoc(hand)
	// 385 points: below the big blind target so the round carries on
	doc.CurrentBlind = 2
	s := restore(t, doc)

	result, err := s.PlayHand([]string{"g1", "g2", "g3", "g4", "g5"})
	require.NoError(t, err)
	require.Equal(t, progression.PlayingBlind, result.Outcome)
	assert.Equal(t, 5, len(result.Destroyed)+len(s.DiscardPile()))
	assert.Equal(t, 52-len(result.Destroyed), ownedCount(s))
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))
	j, _ := jokers.New("odd_todd")
	s.AddJoker(j, "test")
	wheel, _ := tarots.New("wheel")
	s.AddTarot(wheel)
	_, err := s.PlayHand(fullHouse)
	require.NoError(t, err)

	b, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(b, &doc))
	restored := restore(t, doc)

	assert.Equal(t, s.ID, restored.ID)
	assert.Equal(t, s.Hand(), restored.Hand())
	assert.Equal(t, s.DeckCards(), restored.DeckCards())
	assert.Equal(t, s.DiscardPile(), restored.DiscardPile())
	assert.Equal(t, s.Progress(), restored.Progress())
	assert.Equal(t, s.Tarots(), restored.Tarots())
	require.Len(t, restored.Jokers(), 1)
	assert.Equal(t, "odd_todd", restored.Jokers()[0].ID)
	assert.Equal(t, s.Jokers()[0].Stats, restored.Jokers()[0].Stats)
}

func TestRestore_RejectsCorruptDocuments(t *testing.T) {
	hand := fullHouseHand()

	dup := openingDoc(hand)
	dup.DeckCards = append(dup.DeckCards, hand[0])
	_, err := Restore(dup)
	assert.Error(t, err)

	badTarot := openingDoc(hand)
	badTarot.TarotCards = []string{"tower"}
	_, err = Restore(badTarot)
	assert.ErrorIs(t, err, tarots.ErrUnknownTarot)

	crowded := openingDoc(hand)
	for i := 0; i < jokers.MaxJokers+1; i++ {
		j, _ := jokers.New("juggler")
		crowded.Jokers = append(crowded.Jokers, j)
	}
	_, err = Restore(crowded)
	assert.Error(t, err)
}

func TestRestore_SettlesBlindWithNoHandsLeft(t *testing.T) {
	lost := openingDoc(fullHouseHand())
	lost.HandsLeft = 0
	lost.CurrentScore = 120
	s := restore(t, lost)

	p := s.Progress()
	assert.Equal(t, progression.PlayingBlind, p.Phase)
	assert.Equal(t, 2, p.Lives)
	assert.Equal(t, progression.HandsPerBlind, p.HandsLeft)
	assert.Len(t, s.Hand(), HandSize)
	assert.Equal(t, 52, ownedCount(s))

	_, err := s.PlayHand([]string{s.Hand()[0].ID})
	require.NoError(t, err)
	assert.Equal(t, progression.HandsPerBlind-1, s.Progress().HandsLeft)

	cleared := openingDoc(fullHouseHand())
	cleared.HandsLeft = 0
	cleared.CurrentScore = progression.BlindTarget(1, progression.Small)
	s = restore(t, cleared)
	assert.Equal(t, 2, s.Progress().CurrentBlind)
	assert.Equal(t, 3, s.Progress().Lives)
	assert.Equal(t, 60, s.Progress().Money)

	lastLife := openingDoc(fullHouseHand())
	lastLife.HandsLeft = 0
	lastLife.Lives = 1
	s = restore(t, lastLife)
	assert.Equal(t, progression.GameOver, s.Progress().Phase)
	_, err = s.PlayHand([]string{"ck"})
	assert.ErrorIs(t, err, progression.ErrGameOver)
}

func TestRestore_EmptyDocumentStartsFresh(t *testing.T) {
	s := restore(t, Document{UserID: "new-player"})
	assert.Len(t, s.Hand(), HandSize)
	assert.Equal(t, 52, ownedCount(s))
	assert.Equal(t, 50, s.Progress().Money)
	assert.Equal(t, 1, s.Progress().CurrentBlind)
}

func TestPreviewHand_LeavesRunUntouched(t *testing.T) {
	s := restore(t, openingDoc(fullHouseHand()))
	juggler, err := jokers.New("juggler")
	require.NoError(t, err)
	require.True(t, s.AddJoker(juggler, "test"))
	before := len(s.GetUncommittedChanges())

	hr, score, err := s.PreviewHand(fullHouse)
	require.NoError(t, err)
	assert.Equal(t, hands.FullHouse, hr.Rank)
	assert.Equal(t, int64(252), score.TotalScore)

	assert.Zero(t, s.Jokers()[0].Stats.TimesTriggered)
	assert.Equal(t, 4, s.Progress().HandsLeft)
	assert.Len(t, s.Hand(), HandSize)
	assert.Len(t, s.GetUncommittedChanges(), before)

	_, _, err = s.PreviewHand([]string{"missing"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
