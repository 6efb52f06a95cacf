package collision

// CollisionResult classifies one pair outcome against the registry state
// left by the previous test.
type CollisionResult int

const (
	NoCollision CollisionResult = iota
	EnterCollision
	UpdateCollision
	ExitCollision
)

func (r CollisionResult) String() string {
	switch r {
	case NoCollision:
		return "kNoCollision"
	case EnterCollision:
		return "kEnterCollision"
	case UpdateCollision:
		return "kUpdateCollision"
	case ExitCollision:
		return "kExitCollision"
	}
	return "CollisionResult(?)"
}

// classify maps the previous registry state and the fresh outcome to a result.
func classify(registered, overlapping bool) CollisionResult {
	switch {
	case !registered && overlapping:
		return EnterCollision
	case registered && overlapping:
		return UpdateCollision
	case registered && !overlapping:
		return ExitCollision
	}
	return NoCollision
}
