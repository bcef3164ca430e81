package zoneserver

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/protocol"
)

// Catalog lists every packet the zone client understands.
// An unknown id is fatal: a misframed zone stream cannot be trusted.
var Catalog = protocol.NewCatalog("zone", protocol.Fatal,
	protocol.Entry{ID: constants.ZCAcceptEnter, Name: "ZC_ACCEPT_ENTER2", Size: protocol.Fixed(constants.ZCAcceptEnterSize)},
	protocol.Entry{ID: constants.ZCAID, Name: "ZC_AID", Size: protocol.Fixed(constants.ZCAIDSize)},
	protocol.Entry{ID: constants.ZCRefuseEnter, Name: "ZC_REFUSE_ENTER", Size: protocol.Fixed(constants.ZCRefuseEnterSize)},
	protocol.Entry{ID: constants.ZCNotifyPlayerMove, Name: "ZC_NOTIFY_PLAYERMOVE", Size: protocol.Fixed(constants.ZCNotifyPlayerMoveSize)},
	protocol.Entry{ID: constants.ZCNotifyMoveStop, Name: "ZC_NOTIFY_MOVE_STOP", Size: protocol.Fixed(constants.ZCNotifyMoveStopSize)},
	protocol.Entry{ID: constants.ZCNotifyTime, Name: "ZC_NOTIFY_TIME", Size: protocol.Fixed(constants.ZCNotifyTimeSize)},
	protocol.Entry{ID: constants.ZCNotifyTime2, Name: "ZC_NOTIFY_TIME2", Size: protocol.Fixed(constants.ZCNotifyTimeSize)},
	protocol.Entry{ID: constants.ZCParChange, Name: "ZC_PAR_CHANGE", Size: protocol.Fixed(constants.ZCParChangeSize)},
	protocol.Entry{ID: constants.ZCLongParChange, Name: "ZC_LONGPAR_CHANGE", Size: protocol.Fixed(constants.ZCParChangeSize)},
	protocol.Entry{ID: constants.ZCNotifyVanish, Name: "ZC_NOTIFY_VANISH", Size: protocol.Fixed(constants.ZCNotifyVanishSize)},
	protocol.Entry{ID: constants.ZCAckReqName, Name: "ZC_ACK_REQNAME", Size: protocol.Fixed(constants.ZCAckReqNameSize)},
	protocol.Entry{ID: constants.ZCNotifyChat, Name: "ZC_NOTIFY_CHAT", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.ZCNotifyStandEntry, Name: "ZC_NOTIFY_STANDENTRY", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.ZCNotifyNewEntry, Name: "ZC_NOTIFY_NEWENTRY", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.ZCNotifyMoveEntry, Name: "ZC_NOTIFY_MOVEENTRY", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
)
