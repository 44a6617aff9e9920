package sku

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Quality values referenced by the encoder.
const (
	QualityUnique  = 6
	QualityUnusual = 5
	QualityStrange = 11
)

// MaxStrangeParts is the number of strange part slots an item can carry.
const MaxStrangeParts = 3

var (
	// ErrEmpty is returned when parsing an empty string.
	ErrEmpty = errors.New("sku is empty")
	// ErrMalformed is returned when the defindex or quality segment is not numeric.
	ErrMalformed = errors.New("malformed sku")
)

// Item is the decoded form of a SKU string. It is treated as immutable once parsed.
type Item struct {
	Defindex int
	Quality  int
	// Craftable is false for items flagged "uncraftable".
	Craftable bool
	// Tradable is false for items flagged "untradable".
	Tradable     bool
	Killstreak   int
	Sheen        int
	Killstreaker int
	Australium   bool
	Festive      bool
	Effect       int
	// Quality2 is the elevated quality (strange) carried next to the base quality.
	Quality2      int
	Paintkit      int
	Wear          int
	CrateSeries   int
	CraftNumber   int
	Paint         int
	Output        int
	OutputQuality int
	Target        int
	// Spells maps spell attribute ids (1004-1009) to their value.
	Spells map[int]int
	// Parts holds strange part defindexes in slot order.
	Parts []int
}

// Parse decodes a SKU string such as "5021;6;uncraftable;kt-3".
// Unknown tokens are ignored so newer producers do not break older consumers.
func Parse(s string) (Item, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Item{}, ErrEmpty
	}

	parts := strings.Split(s, ";")
	if len(parts) < 2 {
		return Item{}, fmt.Errorf("%w: %q needs defindex and quality", ErrMalformed, s)
	}

	defindex, err := strconv.Atoi(parts[0])
	if err != nil {
		return Item{}, fmt.Errorf("%w: defindex %q", ErrMalformed, parts[0])
	}
	quality, err := strconv.Atoi(parts[1])
	if err != nil {
		return Item{}, fmt.Errorf("%w: quality %q", ErrMalformed, parts[1])
	}

	item := Item{
		Defindex:  defindex,
		Quality:   quality,
		Craftable: true,
		Tradable:  true,
	}

	for _, token := range parts[2:] {
		item.apply(token)
	}

	return item, nil
}

// apply folds a single attribute token into the item.
func (i *Item) apply(token string) {
	switch {
	case token == "uncraftable":
		i.Craftable = false
	case token == "untradable":
		i.Tradable = false
	case token == "australium":
		i.Australium = true
	case token == "festive":
		i.Festive = true
	case token == "strange":
		i.Quality2 = QualityStrange
	case strings.HasPrefix(token, "kt-"):
		i.Killstreak = number(token[3:])
	case strings.HasPrefix(token, "td-"):
		i.Target = number(token[3:])
	case strings.HasPrefix(token, "od-"):
		i.Output = number(token[3:])
	case strings.HasPrefix(token, "oq-"):
		i.OutputQuality = number(token[3:])
	case strings.HasPrefix(token, "sh-"):
		i.Sheen = number(token[3:])
	case strings.HasPrefix(token, "ks-"):
		i.Killstreaker = number(token[3:])
	case strings.HasPrefix(token, "pt-"):
		if len(i.Parts) < MaxStrangeParts {
			if part := number(token[3:]); part != 0 {
				i.Parts = append(i.Parts, part)
			}
		}
	case strings.HasPrefix(token, "sp"):
		id, value, ok := strings.Cut(token[2:], "-")
		if !ok {
			return
		}
		if spell := number(id); spell != 0 {
			if i.Spells == nil {
				i.Spells = make(map[int]int)
			}
			i.Spells[spell] = number(value)
		}
	case strings.HasPrefix(token, "pk"):
		i.Paintkit = number(token[2:])
	case strings.HasPrefix(token, "u"):
		i.Effect = number(token[1:])
	case strings.HasPrefix(token, "w"):
		i.Wear = number(token[1:])
	case strings.HasPrefix(token, "n"):
		i.CraftNumber = number(token[1:])
	case strings.HasPrefix(token, "c"):
		i.CrateSeries = number(token[1:])
	case strings.HasPrefix(token, "p"):
		i.Paint = number(token[1:])
	}
}

// String returns the canonical SKU. Two items with the same fields always produce
// the same string, which makes it usable as the item-type key.
func (i Item) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(i.Defindex))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(i.Quality))

	add := func(format string, args ...any) {
		b.WriteByte(';')
		fmt.Fprintf(&b, format, args...)
	}

	if i.Effect != 0 {
		add("u%d", i.Effect)
	}
	if i.Australium {
		add("australium")
	}
	if !i.Craftable {
		add("uncraftable")
	}
	if !i.Tradable {
		add("untradable")
	}
	if i.Wear != 0 {
		add("w%d", i.Wear)
	}
	if i.Paintkit != 0 {
		add("pk%d", i.Paintkit)
	}
	if i.Quality2 == QualityStrange {
		add("strange")
	}
	if i.Killstreak != 0 {
		add("kt-%d", i.Killstreak)
	}
	if i.Target != 0 {
		add("td-%d", i.Target)
	}
	if i.Festive {
		add("festive")
	}
	if i.CraftNumber != 0 {
		add("n%d", i.CraftNumber)
	}
	if i.CrateSeries != 0 {
		add("c%d", i.CrateSeries)
	}
	if i.Output != 0 {
		add("od-%d", i.Output)
	}
	if i.OutputQuality != 0 {
		add("oq-%d", i.OutputQuality)
	}
	if i.Paint != 0 {
		add("p%d", i.Paint)
	}
	if i.Sheen != 0 {
		add("sh-%d", i.Sheen)
	}
	if i.Killstreaker != 0 {
		add("ks-%d", i.Killstreaker)
	}
	for _, id := range i.spellIDs() {
		add("sp%d-%d", id, i.Spells[id])
	}
	for _, part := range i.Parts {
		add("pt-%d", part)
	}

	return b.String()
}

// Spell returns the value of a spell attribute and whether it is present.
func (i Item) Spell(id int) (int, bool) {
	v, ok := i.Spells[id]
	return v, ok
}

// Part returns the strange part defindex at the given slot, or 0 when the slot is empty.
func (i Item) Part(slot int) int {
	if slot < 0 || slot >= len(i.Parts) {
		return 0
	}
	return i.Parts[slot]
}

func (i Item) spellIDs() []int {
	ids := make([]int, 0, len(i.Spells))
	for id := range i.Spells {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Normalize parses s and returns its canonical form.
func Normalize(s string) (string, error) {
	item, err := Parse(s)
	if err != nil {
		return "", err
	}
	return item.String(), nil
}

func number(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
