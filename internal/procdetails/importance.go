package procdetails

// Importance classes, lowest value is most important.
const (
	ImportanceForeground        int32 = 100
	ImportanceForegroundService int32 = 125
	ImportanceVisible           int32 = 200
	ImportancePerceptible       int32 = 230
	ImportanceService           int32 = 300
	ImportanceTopSleeping       int32 = 325
	ImportanceCantSaveState     int32 = 350
	ImportanceCached            int32 = 400
	ImportanceGone              int32 = 1000
)

var importanceNames = map[int32]string{
	ImportanceForeground:        "foreground",
	ImportanceForegroundService: "foreground_service",
	ImportanceVisible:           "visible",
	ImportancePerceptible:       "perceptible",
	ImportanceService:           "service",
	ImportanceTopSleeping:       "top_sleeping",
	ImportanceCantSaveState:     "cant_save_state",
	ImportanceCached:            "cached",
	ImportanceGone:              "gone",
}

// ImportanceName returns a short label for an importance class,
// or "unknown" if the value is not a known class.
func ImportanceName(importance int32) string {
	if name, ok := importanceNames[importance]; ok {
		return name
	}
	return "unknown"
}
