package login

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/protocol"
)

// Catalog lists the login server responses. The login server answers
// CA_LOGIN exactly once, anything else means the stream is wrong.
var Catalog = protocol.NewCatalog("login", protocol.Fatal,
	protocol.Entry{ID: constants.ACAcceptLogin, Name: "AC_ACCEPT_LOGIN", Size: protocol.LengthPrefixed(constants.LengthFieldOffset)},
	protocol.Entry{ID: constants.ACRefuseLogin, Name: "AC_REFUSE_LOGIN", Size: protocol.Fixed(constants.ACRefuseLoginSize)},
)
