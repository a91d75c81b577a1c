package survival

// Opcodes, the leading byte of every packet. Sparse over 0x00..0xFF;
// names match the protocol's historical packet names.
const (
	OpKeepAlive               byte = 0x00
	OpLogin                   byte = 0x01
	OpHandshake               byte = 0x02
	OpChat                    byte = 0x03
	OpTimeUpdate              byte = 0x04
	OpEntityEquipment         byte = 0x05
	OpSpawnPosition           byte = 0x06
	OpUseEntity               byte = 0x07
	OpUpdateHealth            byte = 0x08
	OpRespawn                 byte = 0x09
	OpOnGround                byte = 0x0A
	OpPlayerPosition          byte = 0x0B
	OpPlayerLook              byte = 0x0C
	OpPlayerMoveLook          byte = 0x0D
	OpPlayerDigging           byte = 0x0E
	OpBlockPlacement          byte = 0x0F
	OpHoldChange              byte = 0x10
	OpAnimation               byte = 0x12
	OpEntityAction            byte = 0x13
	OpNamedEntitySpawn        byte = 0x14
	OpPickupSpawn             byte = 0x15
	OpCollectItem             byte = 0x16
	OpSpawnObject             byte = 0x17
	OpSpawnMob                byte = 0x18
	OpPainting                byte = 0x19
	OpExperienceOrb           byte = 0x1A
	OpEntityVelocity          byte = 0x1C
	OpEntityDestroy           byte = 0x1D
	OpEntityCreate            byte = 0x1E
	OpEntityRelativeMove      byte = 0x1F
	OpEntityLook              byte = 0x20
	OpEntityLookMove          byte = 0x21
	OpEntityTeleport          byte = 0x22
	OpEntityStatus            byte = 0x26
	OpEntityAttach            byte = 0x27
	OpEntityMetadata          byte = 0x28
	OpEntityEffect            byte = 0x29
	OpRemoveEntityEffect      byte = 0x2A
	OpExperience              byte = 0x2B
	OpPreChunk                byte = 0x32
	OpMapChunk                byte = 0x33
	OpMultiBlockChange        byte = 0x34
	OpBlockChange             byte = 0x35
	OpBlockAction             byte = 0x36
	OpExplosion               byte = 0x3C
	OpSoundEffect             byte = 0x3D
	OpState                   byte = 0x46
	OpThunderbolt             byte = 0x47
	OpOpenWindow              byte = 0x64
	OpCloseWindow             byte = 0x65
	OpWindowClick             byte = 0x66
	OpSetSlot                 byte = 0x67
	OpWindowItems             byte = 0x68
	OpUpdateProgressBar       byte = 0x69
	OpTransaction             byte = 0x6A
	OpCreativeInventoryAction byte = 0x6B
	OpUpdateSign              byte = 0x82
	OpItemData                byte = 0x83
	OpIncrementStatistic      byte = 0xC8
	OpPlayerListItem          byte = 0xC9
	OpListPing                byte = 0xFE
	OpDisconnect              byte = 0xFF
)
