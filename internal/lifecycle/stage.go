package lifecycle

// Stage is a coarse visitor classification. Stages are strictly ordered and a
// visitor only ever moves up: new < returning < lead < customer.
type Stage string

const (
	StageNew       Stage = "new"
	StageReturning Stage = "returning"
	StageLead      Stage = "lead"
	StageCustomer  Stage = "customer"
)

var stageRank = map[Stage]int{
	StageNew:       0,
	StageReturning: 1,
	StageLead:      2,
	StageCustomer:  3,
}

// Rank orders stages. Unknown stages rank below new.
func (s Stage) Rank() int {
	if r, ok := stageRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s is as advanced as other.
func (s Stage) AtLeast(other Stage) bool {
	return s.Rank() >= other.Rank()
}

// IsValid checks if the stage is one of the supported values.
func (s Stage) IsValid() bool {
	_, ok := stageRank[s]
	return ok
}

func (s Stage) String() string { return string(s) }
