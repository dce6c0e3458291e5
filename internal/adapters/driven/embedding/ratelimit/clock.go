package ratelimit

import "time"

// Swapped in tests.
var (
	timeNow = time.Now
	after   = time.After
)
