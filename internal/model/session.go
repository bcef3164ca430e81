package model

// Credentials are the tokens issued by the login server. They are carried
// unchanged from the character server to the zone server.
type Credentials struct {
	AccountID uint32
	LoginID1  uint32
	LoginID2  uint32
	Sex       Sex
}
