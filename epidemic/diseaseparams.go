package epidemic

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// InitialCaseType selects how a disease's seed infections are chosen.
type InitialCaseType int

const (
	InitialCasesRandom InitialCaseType = iota
	InitialCasesFile
)

// DiseaseParams holds one disease's transmission, clinical-course, and
// hospitalization-branching parameters. Field names and defaults are
// grounded on original_source/src/DiseaseParm.H.
type DiseaseParams struct {
	Name string

	InitialCaseType  InitialCaseType
	NumInitialCases  int
	CaseFilename     string

	// Transmission coefficients by age group of the receiver.
	XmitComm     [numAgeGroups]float64 // community, home and work
	XmitHood     [numAgeGroups]float64 // neighborhood, home and work
	XmitHHAdult  [numAgeGroups]float64 // within household, adult transmitter
	XmitHHChild  [numAgeGroups]float64 // within household, child transmitter
	XmitNCAdult  [numAgeGroups]float64 // neighborhood cluster, adult transmitter
	XmitNCChild  [numAgeGroups]float64 // neighborhood cluster, child transmitter

	// Transmission coefficients by school type.
	XmitSchool    [numSchoolTypes]float64 // child-to-child and adult-to-adult (and daycare, any-to-any)
	XmitSchoolA2C [numSchoolTypes]float64 // adult-to-child
	XmitSchoolC2A [numSchoolTypes]float64 // child-to-adult

	XmitWork float64

	PTrans          float64
	PAsymp          float64
	AsympRelativeInf float64
	VacEff          float64

	ImmuneLengthAlpha, ImmuneLengthBeta         float64
	LatentLengthAlpha, LatentLengthBeta         float64
	InfectiousLengthAlpha, InfectiousLengthBeta float64
	IncubationLengthAlpha, IncubationLengthBeta float64

	// Hospitalization.
	THosp       [numAgeGroupsHosp]float64 // days in hospital, by hosp age group
	THospOffset float64                   // spacing that encodes ICU/ventilator inside treatment_timer
	CHR         [numAgeGroups]float64     // P(symptomatic -> hospitalized)
	CIC         [numAgeGroups]float64     // P(hospitalized -> ICU)
	CVE         [numAgeGroups]float64     // P(ICU -> ventilator)
	HospToDeath [numAgeGroupsHosp][numAgeGroups]float64

	SymptomaticWithdrawCompliance float64
	ShelterCompliance             float64
}

// DefaultDiseaseParams returns a DiseaseParams populated with the reference
// defaults from original_source/src/DiseaseParm.H (roughly, a COVID-19-like
// disease). Callers typically clone and override a subset via ParameterSet.
func DefaultDiseaseParams(name string) DiseaseParams {
	return DiseaseParams{
		Name: name,

		XmitComm:    [numAgeGroups]float64{0.000018125, 0.000054375, 0.000145, 0.000145, 0.000145, 0.0002175},
		XmitHood:    [numAgeGroups]float64{0.0000725, 0.0002175, 0.00058, 0.00058, 0.00058, 0.00087},
		XmitHHAdult: [numAgeGroups]float64{0.3, 0.3, 0.4, 0.4, 0.4, 0.4},
		XmitHHChild: [numAgeGroups]float64{0.6, 0.6, 0.3, 0.3, 0.3, 0.3},
		XmitNCAdult: [numAgeGroups]float64{0.04, 0.04, 0.05, 0.05, 0.05, 0.05},
		XmitNCChild: [numAgeGroups]float64{0.075, 0.075, 0.04, 0.04, 0.04, 0.04},

		XmitSchool:    [numSchoolTypes]float64{0, 0.0315, 0.0315, 0.0375, 0.0435, 0.15},
		XmitSchoolA2C: [numSchoolTypes]float64{0, 0.0315, 0.0315, 0.0375, 0.0435, 0.15},
		XmitSchoolC2A: [numSchoolTypes]float64{0, 0.0315, 0.0315, 0.0375, 0.0435, 0.15},

		XmitWork: 0.0575,

		PTrans:           0.20,
		PAsymp:           0.40,
		AsympRelativeInf: 0.75,
		VacEff:           0.0,

		ImmuneLengthAlpha: 9.0, ImmuneLengthBeta: 20.0,
		LatentLengthAlpha: 9.0, LatentLengthBeta: 0.33,
		InfectiousLengthAlpha: 36.0, InfectiousLengthBeta: 0.17,
		IncubationLengthAlpha: 25.0, IncubationLengthBeta: 0.2,

		THosp:       [numAgeGroupsHosp]float64{3, 8, 7},
		THospOffset: 10,
		CHR:         [numAgeGroups]float64{.0104, .0104, .070, .28, .28, 1.0},
		CIC:         [numAgeGroups]float64{.24, .24, .24, .36, .36, .35},
		CVE:         [numAgeGroups]float64{.12, .12, .12, .22, .22, .22},
		HospToDeath: [numAgeGroupsHosp][numAgeGroups]float64{
			{0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0.26},
			{0.20, 0.20, 0.20, 0.45, 0.45, 1.0},
		},

		SymptomaticWithdrawCompliance: 0.95,
		ShelterCompliance:             0.95,
	}
}

// sampleGamma draws from Gamma(alpha, beta) using gonum's distuv, with the
// (alpha, beta) shape/scale parameterization (mean alpha*beta) used
// throughout original_source/src/DiseaseParm.H. distuv.Gamma takes a rate,
// so beta is inverted before the draw.
func sampleGamma(alpha, beta float64, rng *rand.Rand) float64 {
	if alpha <= 0 || beta <= 0 {
		return 0
	}
	g := distuv.Gamma{Alpha: alpha, Beta: 1 / beta, Src: rng}
	return g.Rand()
}

// SamplePeriods draws latent, infectious, and incubation periods at the
// moment of infection (§4.6), clamping negatives to zero and incubation to
// at most latent+infectious (I4).
func (p *DiseaseParams) SamplePeriods(rng *rand.Rand) (latent, infectious, incubation float64) {
	latent = sampleGamma(p.LatentLengthAlpha, p.LatentLengthBeta, rng)
	infectious = sampleGamma(p.InfectiousLengthAlpha, p.InfectiousLengthBeta, rng)
	incubation = sampleGamma(p.IncubationLengthAlpha, p.IncubationLengthBeta, rng)
	if latent < 0 {
		latent = 0
	}
	if infectious < 0 {
		infectious = 0
	}
	if incubation < 0 {
		incubation = 0
	}
	if incubation > latent+infectious {
		incubation = math.Floor(latent + infectious)
	}
	return
}

// SampleImmuneLength draws the number of days an agent stays immune before
// reverting to susceptible.
func (p *DiseaseParams) SampleImmuneLength(rng *rand.Rand) float64 {
	return sampleGamma(p.ImmuneLengthAlpha, p.ImmuneLengthBeta, rng)
}

// CheckHospitalization implements the §4.5 hospitalization branch: given an
// age group, decide whether the agent is hospitalized and, if so, whether
// it escalates to ICU and then to a ventilator, returning the resulting
// treatment timer and flags.
func (p *DiseaseParams) CheckHospitalization(age AgeGroup, rng *rand.Rand) (timer float64, icu, ventilator bool) {
	if rng.Float64() >= p.CHR[age] {
		return 0, false, false
	}
	timer = p.THosp[HospAgeGroup(age)]
	if rng.Float64() < p.CIC[age] {
		timer += p.THospOffset
		icu = true
		if rng.Float64() < p.CVE[age] {
			timer += p.THospOffset
			ventilator = true
		}
	}
	return timer, icu, ventilator
}
