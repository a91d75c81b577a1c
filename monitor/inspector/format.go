package inspector

import (
	"fmt"

	"github.com/mickamy/craftd-proxy/chatcolor"
	"github.com/mickamy/craftd-proxy/survival"
)

// opcodeNames maps the wire opcodes this module recognizes to their
// historical packet names, for display only.
var opcodeNames = map[byte]string{
	survival.OpKeepAlive:               "KeepAlive",
	survival.OpLogin:                   "Login",
	survival.OpHandshake:               "Handshake",
	survival.OpChat:                    "Chat",
	survival.OpTimeUpdate:              "TimeUpdate",
	survival.OpEntityEquipment:         "EntityEquipment",
	survival.OpSpawnPosition:           "SpawnPosition",
	survival.OpUseEntity:               "UseEntity",
	survival.OpUpdateHealth:            "UpdateHealth",
	survival.OpRespawn:                 "Respawn",
	survival.OpOnGround:                "OnGround",
	survival.OpPlayerPosition:          "PlayerPosition",
	survival.OpPlayerLook:              "PlayerLook",
	survival.OpPlayerMoveLook:          "PlayerMoveLook",
	survival.OpPlayerDigging:           "PlayerDigging",
	survival.OpBlockPlacement:          "BlockPlacement",
	survival.OpHoldChange:              "HoldChange",
	survival.OpAnimation:               "Animation",
	survival.OpEntityAction:            "EntityAction",
	survival.OpNamedEntitySpawn:        "NamedEntitySpawn",
	survival.OpPickupSpawn:             "PickupSpawn",
	survival.OpCollectItem:             "CollectItem",
	survival.OpSpawnObject:             "SpawnObject",
	survival.OpSpawnMob:                "SpawnMob",
	survival.OpPainting:                "Painting",
	survival.OpExperienceOrb:           "ExperienceOrb",
	survival.OpEntityVelocity:          "EntityVelocity",
	survival.OpEntityDestroy:           "EntityDestroy",
	survival.OpEntityCreate:            "EntityCreate",
	survival.OpEntityRelativeMove:      "EntityRelativeMove",
	survival.OpEntityLook:              "EntityLook",
	survival.OpEntityLookMove:          "EntityLookMove",
	survival.OpEntityTeleport:          "EntityTeleport",
	survival.OpEntityStatus:            "EntityStatus",
	survival.OpEntityAttach:            "EntityAttach",
	survival.OpEntityMetadata:          "EntityMetadata",
	survival.OpEntityEffect:            "EntityEffect",
	survival.OpRemoveEntityEffect:      "RemoveEntityEffect",
	survival.OpExperience:              "Experience",
	survival.OpPreChunk:                "PreChunk",
	survival.OpMapChunk:                "MapChunk",
	survival.OpMultiBlockChange:        "MultiBlockChange",
	survival.OpBlockChange:             "BlockChange",
	survival.OpBlockAction:             "BlockAction",
	survival.OpExplosion:               "Explosion",
	survival.OpSoundEffect:             "SoundEffect",
	survival.OpState:                   "State",
	survival.OpThunderbolt:             "Thunderbolt",
	survival.OpOpenWindow:              "OpenWindow",
	survival.OpCloseWindow:             "CloseWindow",
	survival.OpWindowClick:             "WindowClick",
	survival.OpSetSlot:                 "SetSlot",
	survival.OpWindowItems:             "WindowItems",
	survival.OpUpdateProgressBar:       "UpdateProgressBar",
	survival.OpTransaction:             "Transaction",
	survival.OpCreativeInventoryAction: "CreativeInventoryAction",
	survival.OpUpdateSign:              "UpdateSign",
	survival.OpItemData:                "ItemData",
	survival.OpIncrementStatistic:      "IncrementStatistic",
	survival.OpPlayerListItem:          "PlayerListItem",
	survival.OpListPing:                "ListPing",
	survival.OpDisconnect:              "Disconnect",
}

func opcodeName(pkt survival.Packet) string {
	if name, ok := opcodeNames[pkt.Opcode]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", pkt.Opcode)
}

// summarize renders a short, human-readable description of a packet's
// payload for a single list row. Chat and Disconnect text is stripped
// of color escapes rather than rendered, since SGR codes would blow
// out the fixed column width.
func summarize(pkt survival.Packet) string {
	switch p := pkt.Payload.(type) {
	case survival.Chat:
		return chatcolor.Strip(p.Message)
	case survival.Disconnect:
		return chatcolor.Strip(p.Text)
	case survival.Handshake:
		return p.Value
	case survival.KeepAlive:
		return fmt.Sprintf("id=%d", p.ID)
	case survival.PlayerMoveLook:
		return fmt.Sprintf("x=%.1f y=%.1f z=%.1f", p.X, p.Y, p.Z)
	case survival.BlockPlacement:
		return fmt.Sprintf("(%d,%d,%d) item=%d", p.X, p.Y, p.Z, p.Item.ID)
	case survival.SpawnObject:
		return fmt.Sprintf("entity=%d type=%d", p.EntityID, p.Type)
	default:
		return ""
	}
}
