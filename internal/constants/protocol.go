package constants

import "time"

// Ragnarok Online client protocol constants
//
// Packet ids, wire sizes and timing values shared by the login, character
// and zone clients. Every packet starts with a 2-byte little-endian id;
// variable packets carry their total length at offset 2.

// Framing Constants
const (
	// PacketIDSize is the size of the packet id prefix (uint16 LE)
	PacketIDSize = 2

	// LengthFieldOffset is the offset of the length field in variable packets
	LengthFieldOffset = 2

	// MinFrameLength is the smallest plausible variable packet (id + length)
	MinFrameLength = 4

	// MaxFrameLength is the largest length a uint16 length field can announce
	MaxFrameLength = 65535

	// MaxReceiveBuffer caps the per-connection receive buffer (1 MiB)
	MaxReceiveBuffer = 1 << 20

	// ReadChunkSize is the size of a single socket read
	ReadChunkSize = 4096

	// AccountIDEchoSize is the raw account id the character server sends before any packet
	AccountIDEchoSize = 4
)

// Timing Constants
const (
	// ConnectTimeout bounds TCP connect for every server
	ConnectTimeout = 30 * time.Second

	// LoginResponseTimeout bounds the wait for AC_ACCEPT_LOGIN or AC_REFUSE_LOGIN
	LoginResponseTimeout = 15 * time.Second

	// AuthTimeout bounds the zone authentication phase
	AuthTimeout = 30 * time.Second

	// KeepaliveInterval is the character server ping period, measured from the last send
	KeepaliveInterval = 12 * time.Second

	// WriteTimeout bounds a single blocking send
	WriteTimeout = 5 * time.Second

	// NameCacheTTL is how long an entity name stays fresh in the zone client
	NameCacheTTL = 5 * time.Minute

	// NameRequestTTL suppresses duplicate name requests while an answer is pending
	NameRequestTTL = 3 * time.Second
)

// Login protocol (client ↔ login server)
const (
	CALogin       = 0x0064
	ACAcceptLogin = 0x0AC4
	ACRefuseLogin = 0x006A

	CALoginSize       = 55
	ACRefuseLoginSize = 23

	// ACAcceptLoginHeaderSize is the fixed part before the server list
	ACAcceptLoginHeaderSize = 64

	// ServerEntrySize is one entry of the AC_ACCEPT_LOGIN server list
	ServerEntrySize = 160
)

// Character protocol (client ↔ character server)
const (
	CHEnter        = 0x0065
	CHSelectChar   = 0x0066
	CHDeleteChar   = 0x0068
	CHMakeChar     = 0x0A39
	CHPing         = 0x0187
	CHCharListReq  = 0x09A1
	HCAcceptEnter  = 0x006B
	HCRefuseMake   = 0x006E
	HCAcceptDelete = 0x006F
	HCRefuseDelete = 0x0070
	HCNotifyZone   = 0x0071
	HCPing         = 0x0187
	HCBlockChar    = 0x020D
	HCCharList     = 0x082D
	HCSecondPasswd = 0x08B9
	HCCharInfoPage = 0x099D
	HCAcceptMake   = 0x0B6F

	CHEnterSize       = 17
	CHSelectCharSize  = 3
	CHDeleteCharSize  = 56
	CHMakeCharSize    = 36
	CHPingSize        = 6
	CHCharListReqSize = 2

	HCRefuseMakeSize   = 3
	HCAcceptDeleteSize = 2
	HCRefuseDeleteSize = 3
	HCNotifyZoneSize   = 28
	HCPingSize         = 6
	HCCharListSize     = 29
	HCSecondPasswdSize = 12
	HCAcceptMakeSize   = 2 + CharacterInfoSize

	// HCAcceptEnterHeaderSize is id, length, three slot counters and 20 reserved bytes
	HCAcceptEnterHeaderSize = 27

	// HCCharInfoPageHeaderSize is id and length
	HCCharInfoPageHeaderSize = 4

	// BlockedCharacterEntrySize is char_id + 20-byte expire date
	BlockedCharacterEntrySize = 24
)

// Zone protocol (client ↔ zone/map server)
const (
	CZEnter2           = 0x0436
	CZNotifyActorInit  = 0x007D
	CZRequestMove2     = 0x035F
	CZRequestTime2     = 0x0360
	CZReqName2         = 0x0368
	CZRequestChat      = 0x008C
	ZCAcceptEnter      = 0x02EB
	ZCAID              = 0x0283
	ZCRefuseEnter      = 0x0074
	ZCNotifyPlayerMove = 0x0087
	ZCNotifyMoveStop   = 0x0088
	ZCNotifyTime       = 0x007F
	ZCNotifyTime2      = 0x02C2
	ZCParChange        = 0x00B0
	ZCLongParChange    = 0x00B1
	ZCNotifyVanish     = 0x0080
	ZCAckReqName       = 0x0095
	ZCNotifyChat       = 0x008D
	ZCNotifyMoveEntry  = 0x09FD
	ZCNotifyNewEntry   = 0x09FE
	ZCNotifyStandEntry = 0x09FF

	CZEnter2Size          = 23
	CZNotifyActorInitSize = 2
	CZRequestMove2Size    = 5
	CZRequestTime2Size    = 6
	CZReqName2Size        = 6

	ZCAcceptEnterSize      = 13
	ZCAIDSize              = 6
	ZCRefuseEnterSize      = 3
	ZCNotifyPlayerMoveSize = 12
	ZCNotifyMoveStopSize   = 10
	ZCNotifyTimeSize       = 6
	ZCParChangeSize        = 8
	ZCNotifyVanishSize     = 7
	ZCAckReqNameSize       = 30

	// Минимальные длины пакетов переменной длины. Более новые серверы
	// дописывают поля в конец, лишние байты игнорируются.
	ZCNotifyStandEntryMinSize = 108
	ZCNotifyNewEntryMinSize   = 107
	ZCNotifyMoveEntryMinSize  = 114
	ZCNotifyChatMinSize       = 8
)

// Record Sizes
const (
	// CharacterInfoSize is the wire size of one character slot record
	CharacterInfoSize = 175

	// NameLength is the width of character and entity name fields
	NameLength = 24

	// MapNameLength is the width of map name fields
	MapNameLength = 16

	// EmailLength is the width of the delete confirmation field
	EmailLength = 50

	// PositionSize is the packed x/y/dir size
	PositionSize = 3

	// MoveDataSize is the packed src/dst size
	MoveDataSize = 6
)
