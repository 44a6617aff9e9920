package encoder

import (
	"listing-manager/core/schema"
	"listing-manager/core/sku"
)

// Attribute defindexes understood by the listing service.
const (
	AttrCannotCraft     = 449
	AttrKillstreakTier  = 2025
	AttrKillstreaker    = 2013
	AttrSheen           = 2014
	AttrAustralium      = 2027
	AttrFestive         = 2053
	AttrTauntEffect     = 2041
	AttrParticleEffect  = 134
	AttrElevatedQuality = 214
	AttrPaintkit        = 834
	AttrWear            = 725
	AttrCrateSeries     = 187
	AttrCraftNumber     = 229
	AttrPaint           = 142
	AttrRecipeOutput    = 2000
	AttrTarget          = 2012
	AttrStrangePart1    = 380
	AttrStrangePart2    = 382
	AttrStrangePart3    = 384
)

// Spell attribute ids. The first two carry a value, the rest are flags.
const (
	SpellPaint       = 1004
	SpellFootprints  = 1005
	SpellVoices      = 1006
	SpellPumpkinBomb = 1007
	SpellHalloween   = 1008
	SpellExorcism    = 1009
)

// Rule inspects an item and returns the attributes it contributes, if any.
type Rule func(item sku.Item, meta *schema.ItemMetadata) []Attribute

// NamedRule pairs a rule with a name used in logs and tests.
type NamedRule struct {
	Name  string
	Apply Rule
}

var strangePartAttrs = [sku.MaxStrangeParts]int{AttrStrangePart1, AttrStrangePart2, AttrStrangePart3}

// Rules is the ordered rule set. Changing the order changes the encoded bytes.
var Rules = []NamedRule{
	{"uncraftable", uncraftable},
	{"killstreak_tier", killstreakTier},
	{"killstreaker", killstreaker},
	{"sheen", sheen},
	{"australium", australium},
	{"festive", festive},
	{"effect", effect},
	{"elevated_quality", elevatedQuality},
	{"paintkit", paintkit},
	{"wear", wear},
	{"crate_series", crateSeries},
	{"craft_number", craftNumber},
	{"paint", paint},
	{"recipe_output", recipeOutput},
	{"target", target},
	{"valued_spells", valuedSpells},
	{"flag_spells", flagSpells},
	{"strange_parts", strangeParts},
}

func one(a Attribute) []Attribute {
	return []Attribute{a}
}

func uncraftable(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Craftable {
		return nil
	}
	return one(Marker(AttrCannotCraft))
}

func killstreakTier(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Killstreak == 0 {
		return nil
	}
	return one(Float(AttrKillstreakTier, float64(item.Killstreak)))
}

func killstreaker(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Killstreaker == 0 {
		return nil
	}
	return one(Float(AttrKillstreaker, float64(item.Killstreaker)))
}

func sheen(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Sheen == 0 {
		return nil
	}
	return one(Float(AttrSheen, float64(item.Sheen)))
}

func australium(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if !item.Australium {
		return nil
	}
	return one(Marker(AttrAustralium))
}

func festive(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if !item.Festive {
		return nil
	}
	return one(Float(AttrFestive, 1))
}

// effect encodes the unusual effect. Taunts use a discrete attribute under their
// own defindex; everything else uses the particle effect float.
func effect(item sku.Item, meta *schema.ItemMetadata) []Attribute {
	if item.Effect == 0 {
		return nil
	}
	if meta != nil && meta.IsTaunt() {
		return one(Discrete(AttrTauntEffect, item.Effect))
	}
	return one(Float(AttrParticleEffect, float64(item.Effect)))
}

// elevatedQuality is skipped for unusual quality items, which already signal it.
func elevatedQuality(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Quality2 == 0 || item.Quality == sku.QualityUnusual {
		return nil
	}
	return one(Marker(AttrElevatedQuality))
}

func paintkit(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Paintkit == 0 {
		return nil
	}
	return one(Discrete(AttrPaintkit, item.Paintkit))
}

func wear(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Wear < 1 || item.Wear > 5 {
		return nil
	}
	return one(Float(AttrWear, float64(item.Wear)/5))
}

func crateSeries(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.CrateSeries == 0 {
		return nil
	}
	return one(Float(AttrCrateSeries, float64(item.CrateSeries)))
}

func craftNumber(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.CraftNumber == 0 {
		return nil
	}
	return one(Discrete(AttrCraftNumber, item.CraftNumber))
}

func paint(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Paint == 0 {
		return nil
	}
	return one(Float(AttrPaint, float64(item.Paint)))
}

// recipeOutput describes what a fabricator or kit produces. Target moves into the
// nested list; sheen and killstreaker appear both there and at the top level.
func recipeOutput(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Output == 0 {
		return nil
	}

	quality := item.OutputQuality
	if quality == 0 {
		quality = sku.QualityUnique
	}

	var inner []Attribute
	if item.Target != 0 {
		inner = append(inner, Float(AttrTarget, float64(item.Target)))
	}
	if item.Sheen != 0 {
		inner = append(inner, Float(AttrSheen, float64(item.Sheen)))
	}
	if item.Killstreaker != 0 {
		inner = append(inner, Float(AttrKillstreaker, float64(item.Killstreaker)))
	}

	return one(Attribute{
		Defindex:   AttrRecipeOutput,
		IsOutput:   true,
		Quantity:   1,
		ItemDef:    item.Output,
		Quality:    quality,
		Attributes: inner,
	})
}

func target(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	if item.Output != 0 || item.Target == 0 {
		return nil
	}
	return one(Float(AttrTarget, float64(item.Target)))
}

func valuedSpells(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	var attrs []Attribute
	for _, id := range []int{SpellPaint, SpellFootprints} {
		if v, ok := item.Spell(id); ok {
			attrs = append(attrs, Float(id, float64(v)))
		}
	}
	return attrs
}

func flagSpells(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	var attrs []Attribute
	for _, id := range []int{SpellVoices, SpellPumpkinBomb, SpellHalloween, SpellExorcism} {
		if v, ok := item.Spell(id); ok && v != 0 {
			attrs = append(attrs, Marker(id))
		}
	}
	return attrs
}

func strangeParts(item sku.Item, _ *schema.ItemMetadata) []Attribute {
	var attrs []Attribute
	for slot, defindex := range strangePartAttrs {
		if part := item.Part(slot); part != 0 {
			attrs = append(attrs, Float(defindex, float64(part)))
		}
	}
	return attrs
}
