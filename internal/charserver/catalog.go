package charserver

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/protocol"
)

// Catalog lists every packet the character server may send.
// Unknown ids are skipped with the resync heuristic: character servers
// send undocumented variants across client versions.
var Catalog = protocol.NewCatalog("char", protocol.Resync,
	protocol.Entry{ID: constants.HCAcceptEnter, Name: "HC_ACCEPT_ENTER", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.HCRefuseMake, Name: "HC_REFUSE_MAKECHAR", Size: protocol.Fixed(constants.HCRefuseMakeSize)},
	protocol.Entry{ID: constants.HCAcceptDelete, Name: "HC_ACCEPT_DELETECHAR", Size: protocol.Fixed(constants.HCAcceptDeleteSize)},
	protocol.Entry{ID: constants.HCRefuseDelete, Name: "HC_REFUSE_DELETECHAR", Size: protocol.Fixed(constants.HCRefuseDeleteSize)},
	protocol.Entry{ID: constants.HCNotifyZone, Name: "HC_NOTIFY_ZONESVR", Size: protocol.Fixed(constants.HCNotifyZoneSize)},
	protocol.Entry{ID: constants.HCPing, Name: "HC_PING", Size: protocol.Fixed(constants.HCPingSize)},
	protocol.Entry{ID: constants.HCBlockChar, Name: "HC_BLOCK_CHARACTER", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.HCCharList, Name: "HC_CHARACTER_LIST", Size: protocol.Fixed(constants.HCCharListSize)},
	protocol.Entry{ID: constants.HCSecondPasswd, Name: "HC_SECOND_PASSWD_LOGIN", Size: protocol.Fixed(constants.HCSecondPasswdSize)},
	protocol.Entry{ID: constants.HCCharInfoPage, Name: "HC_ACK_CHARINFO_PER_PAGE", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.HCAcceptMake, Name: "HC_ACCEPT_MAKECHAR", Size: protocol.Fixed(constants.HCAcceptMakeSize)},
)
