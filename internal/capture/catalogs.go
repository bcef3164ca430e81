package capture

import (
	"github.com/udisondev/ronet/internal/charserver"
	charpackets "github.com/udisondev/ronet/internal/charserver/serverpackets"
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/login"
	loginpackets "github.com/udisondev/ronet/internal/login/serverpackets"
	"github.com/udisondev/ronet/internal/protocol"
	"github.com/udisondev/ronet/internal/zoneserver"
	zonepackets "github.com/udisondev/ronet/internal/zoneserver/serverpackets"
)

// Каталоги запросов клиента. Клиенту они не нужны, только анализатору,
// поэтому неизвестные id пропускаются эвристикой.
var (
	loginRequests = protocol.NewCatalog("login-client", protocol.Resync,
		protocol.Entry{ID: constants.CALogin, Name: "CA_LOGIN", Size: protocol.Fixed(constants.CALoginSize)},
	)

	charRequests = protocol.NewCatalog("char-client", protocol.Resync,
		protocol.Entry{ID: constants.CHEnter, Name: "CH_ENTER", Size: protocol.Fixed(constants.CHEnterSize)},
		protocol.Entry{ID: constants.CHSelectChar, Name: "CH_SELECT_CHAR", Size: protocol.Fixed(constants.CHSelectCharSize)},
		protocol.Entry{ID: constants.CHDeleteChar, Name: "CH_DELETE_CHAR", Size: protocol.Fixed(constants.CHDeleteCharSize)},
		protocol.Entry{ID: constants.CHMakeChar, Name: "CH_MAKE_CHAR", Size: protocol.Fixed(constants.CHMakeCharSize)},
		protocol.Entry{ID: constants.CHPing, Name: "CH_PING", Size: protocol.Fixed(constants.CHPingSize)},
		protocol.Entry{ID: constants.CHCharListReq, Name: "CH_CHARLIST_REQ", Size: protocol.Fixed(constants.CHCharListReqSize)},
	)

	zoneRequests = protocol.NewCatalog("zone-client", protocol.Resync,
		protocol.Entry{ID: constants.CZEnter2, Name: "CZ_ENTER2", Size: protocol.Fixed(constants.CZEnter2Size)},
		protocol.Entry{ID: constants.CZNotifyActorInit, Name: "CZ_NOTIFY_ACTORINIT", Size: protocol.Fixed(constants.CZNotifyActorInitSize)},
		protocol.Entry{ID: constants.CZRequestMove2, Name: "CZ_REQUEST_MOVE2", Size: protocol.Fixed(constants.CZRequestMove2Size)},
		protocol.Entry{ID: constants.CZRequestTime2, Name: "CZ_REQUEST_TIME2", Size: protocol.Fixed(constants.CZRequestTime2Size)},
		protocol.Entry{ID: constants.CZReqName2, Name: "CZ_REQNAME2", Size: protocol.Fixed(constants.CZReqName2Size)},
		protocol.Entry{ID: constants.CZRequestChat, Name: "CZ_REQUEST_CHAT", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	)
)

// catalogFor returns the catalog that frames one direction of a protocol.
func catalogFor(proto Protocol, dir Direction) *protocol.Catalog {
	switch {
	case proto == ProtocolLogin && dir == ToClient:
		return login.Catalog
	case proto == ProtocolLogin:
		return loginRequests
	case proto == ProtocolChar && dir == ToClient:
		return charserver.Catalog
	case proto == ProtocolChar:
		return charRequests
	case proto == ProtocolZone && dir == ToClient:
		return zoneserver.Catalog
	default:
		return zoneRequests
	}
}

type decodeFunc func(frame []byte) (any, error)

// decoder adapts a serverpackets parser. A failed parse yields a nil interface, not a typed nil.
func decoder[T any](parse func([]byte) (*T, error)) decodeFunc {
	return func(frame []byte) (any, error) {
		p, err := parse(frame)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// decoders covers server answers only; requests are shown raw.
var decoders = map[Protocol]map[uint16]decodeFunc{
	ProtocolLogin: {
		constants.ACAcceptLogin: decoder(loginpackets.ParseAcceptLogin),
		constants.ACRefuseLogin: decoder(loginpackets.ParseRefuseLogin),
	},
	ProtocolChar: {
		constants.HCAcceptEnter:  decoder(charpackets.ParseAcceptEnter),
		constants.HCRefuseMake:   decoder(charpackets.ParseRefuse),
		constants.HCRefuseDelete: decoder(charpackets.ParseRefuse),
		constants.HCNotifyZone:   decoder(charpackets.ParseNotifyZoneServer),
		constants.HCPing:         decoder(charpackets.ParsePing),
		constants.HCBlockChar:    decoder(charpackets.ParseBlockCharacter),
		constants.HCCharList:     decoder(charpackets.ParseCharacterList),
		constants.HCSecondPasswd: decoder(charpackets.ParseSecondPasswdLogin),
		constants.HCCharInfoPage: decoder(charpackets.ParseCharInfoPage),
		constants.HCAcceptMake:   decoder(charpackets.ParseAcceptMakeChar),
	},
	ProtocolZone: {
		constants.ZCAcceptEnter:      decoder(zonepackets.ParseAcceptEnter),
		constants.ZCAID:              decoder(zonepackets.ParseAID),
		constants.ZCRefuseEnter:      decoder(zonepackets.ParseRefuseEnter),
		constants.ZCNotifyPlayerMove: decoder(zonepackets.ParsePlayerMove),
		constants.ZCNotifyMoveStop:   decoder(zonepackets.ParseMoveStop),
		constants.ZCNotifyTime:       decoder(zonepackets.ParseNotifyTime),
		constants.ZCNotifyTime2:      decoder(zonepackets.ParseNotifyTime),
		constants.ZCParChange:        decoder(zonepackets.ParseParChange),
		constants.ZCLongParChange:    decoder(zonepackets.ParseParChange),
		constants.ZCNotifyVanish:     decoder(zonepackets.ParseVanish),
		constants.ZCAckReqName:       decoder(zonepackets.ParseAckReqName),
		constants.ZCNotifyChat:       decoder(zonepackets.ParseNotifyChat),
		constants.ZCNotifyStandEntry: decoder(zonepackets.ParseStandEntry),
		constants.ZCNotifyNewEntry:   decoder(zonepackets.ParseNewEntry),
		constants.ZCNotifyMoveEntry:  decoder(zonepackets.ParseMoveEntry),
	},
}

func decode(proto Protocol, dir Direction, id uint16, frame []byte) (any, error) {
	if dir != ToClient {
		return nil, nil
	}
	fn, ok := decoders[proto][id]
	if !ok {
		return nil, nil
	}
	return fn(frame)
}
