// Package sextra decodes the ExtraData blocks attached to savegame
// references and inventory items. Each entry is selected by one leading
// byte and carries no length of its own, so every known layout must be
// read exactly.
package sextra

import (
	"github.com/iancoleman/orderedmap"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

type (
	DataType uint8
	// Entry is one decoded ExtraData item. Payload keys follow the layout
	// order of the entry type.
	Entry struct {
		Type    DataType               `json:"type"`
		Name    string                 `json:"name"`
		Offset  int64                  `json:"offset"`
		Payload *orderedmap.OrderedMap `json:"payload"`
	}
	// Block is a vsval-counted list of entries.
	Block struct {
		Entries []Entry `json:"entries"`
	}
	decodeFunc func(reader *lbytes.Reader) (*orderedmap.OrderedMap, error)
)

const (
	TypeWorn                    = DataType(22)
	TypeWornLeft                = DataType(23)
	TypePackageStartLocation    = DataType(24)
	TypePackage                 = DataType(25)
	TypeTresPassPackage         = DataType(26)
	TypeRunOncePacks            = DataType(27)
	TypeReferenceHandle         = DataType(28)
	TypeUnknown29               = DataType(29)
	TypeLevCreaModifier         = DataType(30)
	TypeGhost                   = DataType(31)
	TypeOwnership               = DataType(33)
	TypeGlobal                  = DataType(34)
	TypeRank                    = DataType(35)
	TypeCount                   = DataType(36)
	TypeHealth                  = DataType(37)
	TypeTimeLeft                = DataType(39)
	TypeCharge                  = DataType(40)
	TypeLock                    = DataType(42)
	TypeTeleport                = DataType(43)
	TypeMapMarker               = DataType(44)
	TypeLeveledCreature         = DataType(45)
	TypeLeveledItem             = DataType(46)
	TypeScale                   = DataType(47)
	TypeNonActorMagicCaster     = DataType(49)
	TypeNonActorMagicTarget     = DataType(50)
	TypePlayerCrimeList         = DataType(52)
	TypeItemDropper             = DataType(56)
	TypeCannotWear              = DataType(61)
	TypeExtraPoison             = DataType(62)
	TypeFriendHits              = DataType(68)
	TypeHeadingTarget           = DataType(69)
	TypeStartingWorldOrCell     = DataType(72)
	TypeHotkey                  = DataType(73)
	TypeInfoGeneralTopic        = DataType(76)
	TypeHasNoRumors             = DataType(77)
	TypeTerminalState           = DataType(79)
	TypeUnknown83               = DataType(83)
	TypeCanTalkToPlayer         = DataType(84)
	TypeObjectHealth            = DataType(85)
	TypeModelSwap               = DataType(88)
	TypeRadius                  = DataType(89)
	TypeFactionChanges          = DataType(91)
	TypeDismemberedLimbs        = DataType(92)
	TypeActorCause              = DataType(93)
	TypeCombatStyle             = DataType(101)
	TypeOpenCloseActivateRef    = DataType(104)
	TypeAmmo                    = DataType(106)
	TypePackageData             = DataType(108)
	TypeSayTopicInfoOnceADay    = DataType(111)
	TypeEncounterZone           = DataType(112)
	TypeSayToTopicInfo          = DataType(113)
	TypeGuardedRefData          = DataType(120)
	TypeAshPileRef              = DataType(133)
	TypeFollowerSwimBreadcrumbs = DataType(135)
	TypeAliasInstanceArray      = DataType(136)
	TypePromotedRef             = DataType(140)
	TypeOutfitItem              = DataType(142)
	TypeSceneData               = DataType(146)
	TypeFromAlias               = DataType(149)
	TypeShouldWear              = DataType(150)
	TypeAttachedArrows3D        = DataType(152)
	TypeTextDisplayData         = DataType(153)
	TypeEnchantment             = DataType(155)
	TypeSoul                    = DataType(156)
	TypeForcedTarget            = DataType(157)
	TypeUniqueID                = DataType(159)
	TypeFlags                   = DataType(160)
	TypeRefrPath                = DataType(161)
	TypeForcedLandingMarker     = DataType(164)
	TypeInteraction             = DataType(169)
	TypeGroupConstraint         = DataType(174)
	TypeScriptedAnimDependence  = DataType(175)
	TypeCachedScale             = DataType(176)
)

var typeNames = map[DataType]string{
	TypeWorn:                    "Worn",
	TypeWornLeft:                "WornLeft",
	TypePackageStartLocation:    "PackageStartLocation",
	TypePackage:                 "Package",
	TypeTresPassPackage:         "TresPassPackage",
	TypeRunOncePacks:            "RunOncePacks",
	TypeReferenceHandle:         "ReferenceHandle",
	TypeUnknown29:               "Unknown29",
	TypeLevCreaModifier:         "LevCreaModifier",
	TypeGhost:                   "Ghost",
	TypeOwnership:               "Ownership",
	TypeGlobal:                  "Global",
	TypeRank:                    "Rank",
	TypeCount:                   "Count",
	TypeHealth:                  "Health",
	TypeTimeLeft:                "TimeLeft",
	TypeCharge:                  "Charge",
	TypeLock:                    "Lock",
	TypeTeleport:                "Teleport",
	TypeMapMarker:               "MapMarker",
	TypeLeveledCreature:         "LeveledCreature",
	TypeLeveledItem:             "LeveledItem",
	TypeScale:                   "Scale",
	TypeNonActorMagicCaster:     "NonActorMagicCaster",
	TypeNonActorMagicTarget:     "NonActorMagicTarget",
	TypePlayerCrimeList:         "PlayerCrimeList",
	TypeItemDropper:             "ItemDropper",
	TypeCannotWear:              "CannotWear",
	TypeExtraPoison:             "ExtraPoison",
	TypeFriendHits:              "FriendHits",
	TypeHeadingTarget:           "HeadingTarget",
	TypeStartingWorldOrCell:     "StartingWorldOrCell",
	TypeHotkey:                  "Hotkey",
	TypeInfoGeneralTopic:        "InfoGeneralTopic",
	TypeHasNoRumors:             "HasNoRumors",
	TypeTerminalState:           "TerminalState",
	TypeUnknown83:               "Unknown83",
	TypeCanTalkToPlayer:         "CanTalkToPlayer",
	TypeObjectHealth:            "ObjectHealth",
	TypeModelSwap:               "ModelSwap",
	TypeRadius:                  "Radius",
	TypeFactionChanges:          "FactionChanges",
	TypeDismemberedLimbs:        "DismemberedLimbs",
	TypeActorCause:              "ActorCause",
	TypeCombatStyle:             "CombatStyle",
	TypeOpenCloseActivateRef:    "OpenCloseActivateRef",
	TypeAmmo:                    "Ammo",
	TypePackageData:             "PackageData",
	TypeSayTopicInfoOnceADay:    "SayTopicInfoOnceADay",
	TypeEncounterZone:           "EncounterZone",
	TypeSayToTopicInfo:          "SayToTopicInfo",
	TypeGuardedRefData:          "GuardedRefData",
	TypeAshPileRef:              "AshPileRef",
	TypeFollowerSwimBreadcrumbs: "FollowerSwimBreadcrumbs",
	TypeAliasInstanceArray:      "AliasInstanceArray",
	TypePromotedRef:             "PromotedRef",
	TypeOutfitItem:              "OutfitItem",
	TypeSceneData:               "SceneData",
	TypeFromAlias:               "FromAlias",
	TypeShouldWear:              "ShouldWear",
	TypeAttachedArrows3D:        "AttachedArrows3D",
	TypeTextDisplayData:         "TextDisplayData",
	TypeEnchantment:             "Enchantment",
	TypeSoul:                    "Soul",
	TypeForcedTarget:            "ForcedTarget",
	TypeUniqueID:                "UniqueID",
	TypeFlags:                   "Flags",
	TypeRefrPath:                "RefrPath",
	TypeForcedLandingMarker:     "ForcedLandingMarker",
	TypeInteraction:             "Interaction",
	TypeGroupConstraint:         "GroupConstraint",
	TypeScriptedAnimDependence:  "ScriptedAnimDependence",
	TypeCachedScale:             "CachedScale",
}

func (t DataType) String() string {
	name, ok := typeNames[t]
	if !ok {
		return "Unknown"
	}
	return name
}
