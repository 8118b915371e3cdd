package contracts

import "time"

// Clock returns the current instant. Engines never read the system clock
// directly so tests can freeze time.
type Clock func() time.Time
