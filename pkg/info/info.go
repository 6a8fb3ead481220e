package info

import (
	"github.com/google/uuid"
)

// Build-time variables, set via -ldflags.
var (
	Version   = "0.0.0"
	Dist      = "1"
	GitRev    = "000000"
	BuildTime = "2000-01-01_00:00:00"

	// InstanceID identifies one process lifetime in logs and run stats.
	InstanceID = uuid.New().String()
)
