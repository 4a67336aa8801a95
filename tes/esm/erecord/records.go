package erecord

type (
	Common struct {
		Header   Header `json:"header"`
		EditorID string `json:"editor_id"`
		FullName string `json:"full_name"`
	}
	ValueWeight struct {
		Value  uint32  `json:"value"`
		Weight float32 `json:"weight"`
	}
	Effect struct {
		EffectID     uint32  `json:"effect_id"`
		Magnitude    float32 `json:"magnitude"`
		AreaOfEffect uint32  `json:"area_of_effect"`
		Duration     uint32  `json:"duration"`
		// MagicEffect is set by the plugin database once the MGEF is known.
		MagicEffect *MagicEffect `json:"-"`
	}
	Effects struct {
		Effects []Effect `json:"effects"`
	}

	PluginHeader struct {
		Common
		Version     float32  `json:"version"`
		RecordCount int32    `json:"record_count"`
		NextID      uint32   `json:"next_id"`
		Author      string   `json:"author"`
		Description string   `json:"description"`
		Masters     []string `json:"masters"`
	}
	MagicEffect struct {
		Common
		Flags          uint32   `json:"flags"`
		BaseCost       float32  `json:"base_cost"`
		RelatedID      uint32   `json:"related_id"`
		Skill          int32    `json:"skill"`
		ResistanceAV   uint32   `json:"resistance_av"`
		SkillLevel     uint32   `json:"skill_level"`
		Area           uint32   `json:"area"`
		CastingTime    float32  `json:"casting_time"`
		EffectType     uint32   `json:"effect_type"`
		PrimaryAV      int32    `json:"primary_av"`
		CounterEffects []uint32 `json:"counter_effects"`
		Description    string   `json:"description"`
		Keywords       []uint32 `json:"keywords"`
	}
	Ingredient struct {
		Common
		ValueWeight
		Effects
		Keywords []uint32 `json:"keywords"`
	}
	Potion struct {
		Common
		ValueWeight
		Effects
		Flags    PotionFlags `json:"flags"`
		Keywords []uint32    `json:"keywords"`
	}
	PotionFlags   uint32
	EnchantedItem struct {
		Cost            uint32  `json:"cost"`
		Flags           uint32  `json:"flags"`
		CastType        uint32  `json:"cast_type"`
		EnchantAmount   uint32  `json:"enchant_amount"`
		Delivery        uint32  `json:"delivery"`
		EnchantType     uint32  `json:"enchant_type"`
		ChargeTime      float32 `json:"charge_time"`
		BaseEnchantment uint32  `json:"base_enchantment"`
	}
	Enchantment struct {
		Common
		Effects
		Item EnchantedItem `json:"item"`
	}
	Armor struct {
		Common
		ValueWeight
		Enchantment       uint32 `json:"enchantment"`
		EnchantmentAmount uint16 `json:"enchantment_amount"`
		Description       string `json:"description"`
		ArmorRating       uint32 `json:"armor_rating"`
	}
	Misc struct {
		Common
		ValueWeight
	}
	Scroll struct {
		Common
		ValueWeight
		Effects
		Description string `json:"description"`
	}
	Book struct {
		Common
		ValueWeight
		Description  string `json:"description"`
		Description2 string `json:"description2"`
		Flags        uint8  `json:"flags"`
		BookType     uint8  `json:"book_type"`
		Teaches      uint32 `json:"teaches"`
	}
	Weapon struct {
		Common
		ValueWeight
		Description       string `json:"description"`
		Template          uint32 `json:"template"`
		Damage            uint16 `json:"damage"`
		EnchantmentCharge uint16 `json:"enchantment_charge"`
		Enchantment       uint32 `json:"enchantment"`
	}
	Ammo struct {
		Common
		ValueWeight
		Description       string  `json:"description"`
		Projectile        uint32  `json:"projectile"`
		Flags             uint32  `json:"flags"`
		Damage            float32 `json:"damage"`
		EnchantmentCharge uint16  `json:"enchantment_charge"`
		Enchantment       uint32  `json:"enchantment"`
	}
	SoulGem struct {
		Common
		ValueWeight
		Soul     SoulSize `json:"soul"`
		Capacity SoulSize `json:"capacity"`
	}
	SoulSize uint8
	Key      struct {
		Common
		ValueWeight
	}
)

const (
	PotionManualCalc = PotionFlags(0x1)
	PotionFood       = PotionFlags(0x2)
	PotionMedicine   = PotionFlags(0x10000)
	PotionPoison     = PotionFlags(0x20000)
)

var potionFlagNames = map[PotionFlags]string{
	PotionManualCalc: "ManualCalc",
	PotionFood:       "Food",
	PotionMedicine:   "Medicine",
	PotionPoison:     "Poison",
}

var soulSizeNames = []string{"Empty", "Petty", "Lesser", "Common", "Greater", "Grand"}

var castTypeNames = map[uint32]string{
	0x00: "Constant Effect",
	0x01: "Fire and Forget",
	0x02: "Concentration",
}

var deliveryNames = map[uint32]string{
	0x00: "Self",
	0x01: "Touch",
	0x02: "Aimed",
	0x03: "Target Actor",
	0x04: "Target Location",
}

var enchantTypeNames = map[uint32]string{
	0x06: "Enchantment",
	0x0C: "Staff Enchantment",
}

func (c *Common) RecordHeader() Header {
	return c.Header
}

func (c *Common) FormID() uint32 {
	return c.Header.FormID
}

// Name is the display name, falling back to the editor id.
func (c *Common) Name() string {
	if c.FullName != "" {
		return c.FullName
	}
	if c.EditorID != "" {
		return c.EditorID
	}
	return NamelessName
}

func (v *ValueWeight) BaseValue() uint32 {
	return v.Value
}

func (v *ValueWeight) ItemWeight() float32 {
	return v.Weight
}

func (e *Effects) EffectList() []Effect {
	return e.Effects
}

// Names lists the set flags in ascending bit order.
func (f PotionFlags) Names() []string {
	names := make([]string, 0, len(potionFlagNames))
	for _, bit := range []PotionFlags{PotionManualCalc, PotionFood, PotionMedicine, PotionPoison} {
		if f&bit != 0 {
			names = append(names, potionFlagNames[bit])
		}
	}
	return names
}

func (f PotionFlags) IsPoison() bool {
	return f&PotionPoison != 0
}

func (s SoulSize) String() string {
	if int(s) < len(soulSizeNames) {
		return soulSizeNames[s]
	}
	return "Unknown"
}

func (e EnchantedItem) CastTypeName() string {
	return nameOr(castTypeNames, e.CastType)
}

func (e EnchantedItem) DeliveryName() string {
	return nameOr(deliveryNames, e.Delivery)
}

func (e EnchantedItem) EnchantTypeName() string {
	return nameOr(enchantTypeNames, e.EnchantType)
}

func nameOr(names map[uint32]string, value uint32) string {
	if name, ok := names[value]; ok {
		return name
	}
	return "Unknown"
}
