package qsearch

// DriverState represents where the driver is in its round loop
type DriverState int

const (
	StateEstimating DriverState = iota
	StateScheduling
	StateAmplifying
	StateVerifying
	StateDone
)

func (s DriverState) String() string {
	switch s {
	case StateEstimating:
		return "estimating"
	case StateScheduling:
		return "scheduling"
	case StateAmplifying:
		return "amplifying"
	case StateVerifying:
		return "verifying"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
