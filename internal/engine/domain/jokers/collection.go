package jokers

// MaxJokers is the number of joker slots a run has
const MaxJokers = 5

// Collection is the ordered set of owned jokers
type Collection struct {
	jokers []*Joker
}

func NewCollection(jokers ...*Joker) *Collection {
	c := &Collection{}
	for _, j := range jokers {
		c.Add(j)
	}
	return c
}

// Add appends j. Returns false without changes when every slot is taken.
func (c *Collection) Add(j *Joker) bool {
	if j == nil || len(c.jokers) >= MaxJokers {
		return false
	}
	c.jokers = append(c.jokers, j)
	return true
}

// IsFull reports whether all slots are taken
func (c *Collection) IsFull() bool {
	return len(c.jokers) >= MaxJokers
}

// Remove drops the joker at index i
func (c *Collection) Remove(i int) (*Joker, bool) {
	if i < 0 || i >= len(c.jokers) {
		return nil, false
	}
	j := c.jokers[i]
	c.jokers = append(c.jokers[:i], c.jokers[i+1:]...)
	return j, true
}

// Sell removes the joker at index i and returns its sell value
func (c *Collection) Sell(i int) (int, bool) {
	j, ok := c.Remove(i)
	if !ok {
		return 0, false
	}
	return j.SellValue(), true
}

// Toggle flips the active flag of the joker at index i
func (c *Collection) Toggle(i int) bool {
	if i < 0 || i >= len(c.jokers) {
		return false
	}
	c.jokers[i].IsActive = !c.jokers[i].IsActive
	return true
}

// At returns the joker at index i, or nil
func (c *Collection) At(i int) *Joker {
	if i < 0 || i >= len(c.jokers) {
		return nil
	}
	return c.jokers[i]
}

// All returns the owned jokers in slot order. The slice is a copy; the jokers are not.
func (c *Collection) All() []*Joker {
	out := make([]*Joker, len(c.jokers))
	copy(out, c.jokers)
	return out
}

func (c *Collection) Len() int {
	return len(c.jokers)
}

// PassiveExtra sums an Extra key over active passive jokers without touching stats
func (c *Collection) PassiveExtra(key string) int {
	total := 0
	for _, j := range c.jokers {
		if j.IsActive && j.Trigger == Passive && j.effect != nil {
			total += j.effect.Apply(Context{}).Extra[key]
		}
	}
	return total
}
