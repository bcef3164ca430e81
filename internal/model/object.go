package model

// ObjectType classifies a spawned entity.
type ObjectType uint8

const (
	ObjectPC ObjectType = iota
	ObjectDisguise
	ObjectItem
	ObjectSkill
	ObjectChat
	ObjectMonster
	ObjectNPC
	ObjectPet
	ObjectHomunculus
	ObjectMercenary
	ObjectElemental
)

func (t ObjectType) String() string {
	switch t {
	case ObjectPC:
		return "PC"
	case ObjectDisguise:
		return "DISGUISE"
	case ObjectItem:
		return "ITEM"
	case ObjectSkill:
		return "SKILL"
	case ObjectChat:
		return "CHAT"
	case ObjectMonster:
		return "MONSTER"
	case ObjectNPC:
		return "NPC"
	case ObjectPet:
		return "PET"
	case ObjectHomunculus:
		return "HOMUNCULUS"
	case ObjectMercenary:
		return "MERCENARY"
	case ObjectElemental:
		return "ELEMENTAL"
	default:
		return "UNKNOWN"
	}
}

// Sex is the account or character sex byte.
type Sex uint8

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
)

func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "F"
	case SexMale:
		return "M"
	default:
		return "UNKNOWN"
	}
}

// VanishType tells why an entity left the view.
type VanishType uint8

const (
	VanishOutOfSight VanishType = iota
	VanishDied
	VanishLoggedOut
	VanishTeleported
)

func (v VanishType) String() string {
	switch v {
	case VanishOutOfSight:
		return "OUT_OF_SIGHT"
	case VanishDied:
		return "DIED"
	case VanishLoggedOut:
		return "LOGGED_OUT"
	case VanishTeleported:
		return "TELEPORTED"
	default:
		return "UNKNOWN"
	}
}
