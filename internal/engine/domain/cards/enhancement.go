package cards

// Enhancement is a permanent modifier attached to a card
type Enhancement string

const (
	Wild        Enhancement = "WILD"
	Glass       Enhancement = "GLASS"
	Steel       Enhancement = "STEEL"
	Gold        Enhancement = "GOLD"
	Stone       Enhancement = "STONE"
	BonusChip1  Enhancement = "BONUS_CHIP_1"
	BonusChip2  Enhancement = "BONUS_CHIP_2"
	BonusChip4  Enhancement = "BONUS_CHIP_4"
	Multiplier1 Enhancement = "MULTIPLIER_1"
	Multiplier2 Enhancement = "MULTIPLIER_2"
)

// GlassBreakChance is the probability a played GLASS card is destroyed
const GlassBreakChance = 0.5

// Valid reports whether e is a known enhancement
func (e Enhancement) Valid() bool {
	switch e {
	case Wild, Glass, Steel, Gold, Stone,
		BonusChip1, BonusChip2, BonusChip4,
		Multiplier1, Multiplier2:
		return true
	}
	return false
}

// ChipBonus is the chips this enhancement adds to a scored card
func (e Enhancement) ChipBonus() int {
	switch e {
	case BonusChip1:
		return 1
	case BonusChip2:
		return 2
	case BonusChip4:
		return 4
	case Stone:
		return 50
	}
	return 0
}

// MultiplierBonus is the multiplier this enhancement adds to a scored card
func (e Enhancement) MultiplierBonus() int {
	switch e {
	case Multiplier1, Steel:
		return 1
	case Multiplier2, Glass:
		return 2
	}
	return 0
}
