package actor

// Goodie is collected by heroes.
type Goodie struct {
	*Actor

	Score         [4]int
	StrengthBoost int
	// Invincibility is the number of seconds of invincibility granted.
	Invincibility float64
	OnCollect     func(g *Goodie, h *Hero)
}

// Destination absorbs heroes once the level has collected enough goodies.
type Destination struct {
	*Actor

	Capacity     int
	Activation   [4]int
	ArrivalSound string

	holding int
}

func (d *Destination) Holding() int {
	return d.holding
}
