// Package epidemic implements the agent-based, multi-disease epidemic
// simulation engine: the daily phase loop, the five interaction models,
// disease progression, and in-hospital treatment.
package epidemic

// MaxDiseases bounds how many diseases a single run may track at once.
const MaxDiseases = 10

// FamiliesPerCluster is the number of families that share a neighborhood
// cluster for the tighter "family cluster" contact tier inside the home
// interaction model.
const FamiliesPerCluster = 4

// AgeGroup buckets an agent's age for transmission-coefficient lookup.
type AgeGroup int

const (
	AgeU5 AgeGroup = iota
	Age5to17
	Age18to29
	Age30to49
	Age50to64
	AgeO65
	numAgeGroups
)

func (g AgeGroup) String() string {
	return [...]string{"u5", "a5-17", "a18-29", "a30-49", "a50-64", "o65"}[g]
}

// IsAdult reports whether the age group is counted as an adult transmitter
// for the purposes of the Home and School interaction models.
func (g AgeGroup) IsAdult() bool {
	return g > Age5to17
}

// AgeGroupHosp buckets age for hospitalization-day lookup, a coarser split
// than AgeGroup.
type AgeGroupHosp int

const (
	HospU50 AgeGroupHosp = iota
	Hosp50to64
	HospO65
	numAgeGroupsHosp
)

// HospAgeGroup maps an AgeGroup to its AgeGroupHosp bucket.
func HospAgeGroup(g AgeGroup) AgeGroupHosp {
	switch g {
	case AgeO65:
		return HospO65
	case Age50to64:
		return Hosp50to64
	default:
		return HospU50
	}
}

// SchoolType enumerates the kind of school an agent attends. None means the
// agent is not enrolled.
type SchoolType int

const (
	SchoolNone SchoolType = iota
	SchoolCollege
	SchoolHigh
	SchoolMiddle
	SchoolElem
	SchoolDaycare
	numSchoolTypes
)

// Status is an agent's disease status for one disease.
type Status int

const (
	StatusNever Status = iota
	StatusInfected
	StatusImmune
	StatusSusceptible
	StatusDead
)

func (s Status) String() string {
	return [...]string{"never", "infected", "immune", "susceptible", "dead"}[s]
}

// SymptomStatus tracks whether and how an infected agent shows symptoms.
type SymptomStatus int

const (
	Presymptomatic SymptomStatus = iota
	Symptomatic
	Asymptomatic
)

// DiseaseStat indexes the four per-community counters tracked per disease by
// StatsEngine: three currently-active gauges (hospitalization, ICU,
// ventilator) and the cumulative death count.
type DiseaseStat int

const (
	StatHospitalization DiseaseStat = iota
	StatICU
	StatVentilator
	StatDeath
	numDiseaseStats
)

// schoolTypeForSchoolID maps the census school_id encoding onto SchoolType.
// Ids 1-5 map to the five enrolled buckets; 0 (not enrolled) and any id
// outside 1-5 map to SchoolNone, mirroring
// original_source/src/AgentDefinitions.H's SchoolCensusIDType.
func schoolTypeForSchoolID(schoolID int) SchoolType {
	if schoolID <= 0 || schoolID >= int(numSchoolTypes) {
		return SchoolNone
	}
	return SchoolType(schoolID)
}
