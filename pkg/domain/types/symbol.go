package types

var (
	stems    = []string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	branches = []string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

// symbolElements maps every stem and branch symbol to its element.
// Never mutated after init.
var symbolElements = map[string]Element{
	// Stems
	"甲": ElementWood,
	"乙": ElementWood,
	"丙": ElementFire,
	"丁": ElementFire,
	"戊": ElementEarth,
	"己": ElementEarth,
	"庚": ElementMetal,
	"辛": ElementMetal,
	"壬": ElementWater,
	"癸": ElementWater,

	// Branches
	"寅": ElementWood,
	"卯": ElementWood,
	"巳": ElementFire,
	"午": ElementFire,
	"辰": ElementEarth,
	"丑": ElementEarth,
	"戌": ElementEarth,
	"未": ElementEarth,
	"申": ElementMetal,
	"酉": ElementMetal,
	"子": ElementWater,
	"亥": ElementWater,
}

// Stems returns the ten heavenly stems in cycle order
func Stems() []string {
	return append([]string(nil), stems...)
}

// Branches returns the twelve earthly branches in cycle order
func Branches() []string {
	return append([]string(nil), branches...)
}

// ElementOf looks up the element of a single stem or branch symbol.
// It returns false for an empty or unrecognized symbol.
func ElementOf(symbol string) (Element, bool) {
	e, ok := symbolElements[symbol]
	return e, ok
}
