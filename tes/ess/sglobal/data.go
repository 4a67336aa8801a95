// Package sglobal decodes the savegame global data tables. Only the blocks
// an inventory view needs are parsed; the rest keep their raw bytes.
package sglobal

import (
	"fmt"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

type (
	Type uint32
	// Block is one (type, length, payload) global data entry.
	Block struct {
		Type    Type    `json:"type"`
		Name    string  `json:"name"`
		Offset  int64   `json:"offset"`
		Length  uint32  `json:"length"`
		Payload Payload `json:"payload"`
	}
	// Payload is one of MiscStats, CreatedObjects, IngredientShared or
	// Unparsed.
	Payload interface {
		payloadType() string
	}
	Unparsed struct {
		Raw []byte `json:"raw"`
	}

	Category uint8
	Stat     struct {
		Name     string   `json:"name"`
		Category Category `json:"category"`
		Value    uint32   `json:"value"`
	}
	MiscStats struct {
		Stats []Stat `json:"stats"`
	}

	EffectInfo struct {
		EffectID  refid.RefID `json:"effect_id"`
		Magnitude float32     `json:"magnitude"`
		Duration  uint32      `json:"duration"`
		Area      uint32      `json:"area"`
		Price     float32     `json:"price"`
	}
	// Enchantment is an object created in-game: a custom enchantment,
	// potion or poison.
	Enchantment struct {
		RefID     refid.RefID  `json:"ref_id"`
		TimesUsed uint32       `json:"times_used"`
		Effects   []EffectInfo `json:"effects"`
		Kind      CreatedKind  `json:"kind"`
	}
	CreatedKind    string
	CreatedObjects struct {
		Weapons []Enchantment `json:"weapons"`
		Armours []Enchantment `json:"armours"`
		Potions []Enchantment `json:"potions"`
		Poisons []Enchantment `json:"poisons"`
	}

	IngredientPair struct {
		First  refid.RefID `json:"first"`
		Second refid.RefID `json:"second"`
	}
	IngredientShared struct {
		Pairs []IngredientPair `json:"pairs"`
	}

	decodeFunc func(reader *lbytes.Reader, registry *refid.Registry) (Payload, error)
)

const (
	TypeMiscStats             = Type(0)
	TypePlayerLocation        = Type(1)
	TypeTES                   = Type(2)
	TypeGlobalVariables       = Type(3)
	TypeCreatedObjects        = Type(4)
	TypeEffects               = Type(5)
	TypeWeather               = Type(6)
	TypeAudio                 = Type(7)
	TypeSkyCells              = Type(8)
	TypeProcessLists          = Type(100)
	TypeCombat                = Type(101)
	TypeInterface             = Type(102)
	TypeActorCauses           = Type(103)
	TypeUnknown104            = Type(104)
	TypeDetectionManager      = Type(105)
	TypeLocationMetaData      = Type(106)
	TypeQuestStaticData       = Type(107)
	TypeStoryTeller           = Type(108)
	TypeMagicFavorites        = Type(109)
	TypePlayerControls        = Type(110)
	TypeStoryEventManager     = Type(111)
	TypeIngredientShared      = Type(112)
	TypeMenuControls          = Type(113)
	TypeMenuTopicManager      = Type(114)
	TypeTempEffects           = Type(1000)
	TypePapyrus               = Type(1001)
	TypeAnimObjects           = Type(1002)
	TypeTimer                 = Type(1003)
	TypeSynchronizedAnimation = Type(1004)
	TypeMain                  = Type(1005)
)

const (
	// BlockHeaderSize is the type and length ahead of each block.
	BlockHeaderSize = 8

	minStatSize        = 2 + 1 + 4
	minEnchantmentSize = refid.Size + 4 + 1
	effectInfoSize     = refid.Size + 4*4
)

const (
	CategoryGeneral = Category(iota)
	CategoryQuest
	CategoryCombat
	CategoryMagic
	CategoryCrafting
	CategoryCrime
	CategoryDLCStats
)

const (
	CreatedWeapon = CreatedKind("weapon")
	CreatedArmour = CreatedKind("armour")
	CreatedPotion = CreatedKind("potion")
	CreatedPoison = CreatedKind("poison")
)

var typeNames = map[Type]string{
	TypeMiscStats:             "Misc Stats",
	TypePlayerLocation:        "Player Location",
	TypeTES:                   "TES",
	TypeGlobalVariables:       "Global Variables",
	TypeCreatedObjects:        "Created Objects",
	TypeEffects:               "Effects",
	TypeWeather:               "Weather",
	TypeAudio:                 "Audio",
	TypeSkyCells:              "SkyCells",
	TypeProcessLists:          "Process Lists",
	TypeCombat:                "Combat",
	TypeInterface:             "Interface",
	TypeActorCauses:           "Actor Causes",
	TypeUnknown104:            "Unknown 104",
	TypeDetectionManager:      "Detection Manager",
	TypeLocationMetaData:      "Location MetaData",
	TypeQuestStaticData:       "Quest Static Data",
	TypeStoryTeller:           "StoryTeller",
	TypeMagicFavorites:        "Magic Favorites",
	TypePlayerControls:        "PlayerControls",
	TypeStoryEventManager:     "Story Event Manager",
	TypeIngredientShared:      "Ingredient Shared",
	TypeMenuControls:          "MenuControls",
	TypeMenuTopicManager:      "MenuTopicManager",
	TypeTempEffects:           "Temp Effects",
	TypePapyrus:               "Papyrus",
	TypeAnimObjects:           "Anim Objects",
	TypeTimer:                 "Timer",
	TypeSynchronizedAnimation: "Synchronized Animations",
	TypeMain:                  "Main",
}

var categoryNames = map[Category]string{
	CategoryGeneral:  "General",
	CategoryQuest:    "Quest",
	CategoryCombat:   "Combat",
	CategoryMagic:    "Magic",
	CategoryCrafting: "Crafting",
	CategoryCrime:    "Crime",
	CategoryDLCStats: "DLC Stats",
}

func (t Type) String() string {
	name, ok := typeNames[t]
	if !ok {
		return fmt.Sprintf("Unknown %d", uint32(t))
	}
	return name
}

func (c Category) String() string {
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Name is how created objects show up when an identifier resolves to them.
func (e Enchantment) Name() string {
	return fmt.Sprintf("Created %s %06X", e.Kind, e.RefID.Value)
}

// All lists every created object, weapons first.
func (c CreatedObjects) All() []Enchantment {
	all := make([]Enchantment, 0, len(c.Weapons)+len(c.Armours)+len(c.Potions)+len(c.Poisons))
	all = append(all, c.Weapons...)
	all = append(all, c.Armours...)
	all = append(all, c.Potions...)
	return append(all, c.Poisons...)
}

// Get finds a stat by name.
func (m MiscStats) Get(name string) (Stat, bool) {
	for _, stat := range m.Stats {
		if stat.Name == name {
			return stat, true
		}
	}
	return Stat{}, false
}

func (Unparsed) payloadType() string         { return "unparsed" }
func (MiscStats) payloadType() string        { return "misc_stats" }
func (CreatedObjects) payloadType() string   { return "created_objects" }
func (IngredientShared) payloadType() string { return "ingredient_shared" }
