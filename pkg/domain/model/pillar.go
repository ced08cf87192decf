package model

// Pillar is a two-symbol stem+branch token such as "甲子"
type Pillar string

// String returns the token
func (p Pillar) String() string {
	return string(p)
}

// Symbols splits the pillar into its individual symbols
func (p Pillar) Symbols() []string {
	symbols := make([]string, 0, 2)
	for _, r := range string(p) {
		symbols = append(symbols, string(r))
	}
	return symbols
}

// Stem returns the first symbol, or an empty string for an empty pillar
func (p Pillar) Stem() string {
	for _, r := range string(p) {
		return string(r)
	}
	return ""
}

// Branch returns the second symbol, or an empty string if absent
func (p Pillar) Branch() string {
	symbols := p.Symbols()
	if len(symbols) < 2 {
		return ""
	}
	return symbols[1]
}

// Pillars holds the four pillars of a chart
type Pillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  Pillar
}

// List returns the pillars in Year, Month, Day, Hour order
func (p Pillars) List() []Pillar {
	return []Pillar{p.Year, p.Month, p.Day, p.Hour}
}

// Symbols returns every symbol of the four pillars in order
func (p Pillars) Symbols() []string {
	var symbols []string
	for _, pillar := range p.List() {
		symbols = append(symbols, pillar.Symbols()...)
	}
	return symbols
}

// DayMaster returns the stem of the day pillar (rizhu)
func (p Pillars) DayMaster() string {
	return p.Day.Stem()
}
