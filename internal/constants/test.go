package constants

import "time"

// Test Constants
//
// IMPORTANT: These constants are for testing only. DO NOT use in production code.

// Fake Server Timing Constants
const (
	// TestEventTimeout bounds how long a test polls a client for an expected event
	TestEventTimeout = 2 * time.Second

	// TestPollInterval is the pause between client Update calls in tests
	TestPollInterval = 5 * time.Millisecond
)

// Test Session Constants
const (
	// TestAccountID is the account id used by fixtures (rAthena accounts start at 2000000)
	TestAccountID = 2000001

	// TestCharacterID is the character id used by fixtures (rAthena characters start at 150000)
	TestCharacterID = 150001

	// TestLoginID1 is the first login token used by fixtures
	TestLoginID1 = 0x11223344

	// TestLoginID2 is the second login token used by fixtures
	TestLoginID2 = 0x55667788
)
