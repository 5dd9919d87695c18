package epidemic

import (
	"strconv"
	"strings"
)

// ParameterSet is the flat key/value parameter surface from spec.md §6,
// modeled on the teacher's (Harrizontal dispatchserver)
// dispatchsim/settingsformat.go JSON-tagged settings structs, but kept as a
// plain string map since the real input is an arbitrary flat key/value file
// rather than a fixed JSON shape.
type ParameterSet struct {
	values map[string]string
	seen   map[string]bool
}

// NewParameterSet builds a ParameterSet from a flat map, e.g. parsed from an
// inputs file of "key = value" lines.
func NewParameterSet(values map[string]string) *ParameterSet {
	return &ParameterSet{values: values, seen: make(map[string]bool)}
}

func (p *ParameterSet) mark(key string) {
	p.seen[key] = true
}

// Float64 looks up key as a float64, returning def if absent.
func (p *ParameterSet) Float64(key string, def float64) float64 {
	p.mark(key)
	v, ok := p.values[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Int looks up key as an int, returning def if absent.
func (p *ParameterSet) Int(key string, def int) int {
	p.mark(key)
	v, ok := p.values[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// String looks up key as a string, returning def if absent.
func (p *ParameterSet) String(key, def string) string {
	p.mark(key)
	v, ok := p.values[key]
	if !ok {
		return def
	}
	return v
}

// FloatArray looks up key as a comma-separated array of n floats. Missing
// or malformed entries fall back to def unchanged.
func (p *ParameterSet) FloatArray(key string, n int, def []float64) []float64 {
	p.mark(key)
	v, ok := p.values[key]
	if !ok {
		return def
	}
	parts := strings.Split(v, ",")
	if len(parts) != n {
		return def
	}
	out := make([]float64, n)
	for i, s := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return def
		}
		out[i] = f
	}
	return out
}

// Unrecognized returns every key present in the set that was never looked
// up via Float64/Int/String/FloatArray. §6 requires these be logged as
// warnings and otherwise ignored.
func (p *ParameterSet) Unrecognized() []string {
	var out []string
	for k := range p.values {
		if !p.seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// WarnUnrecognized logs (via the package logger) every key that Unrecognized
// reports, matching §6's "unrecognized keys must be ignored with a warning".
func (p *ParameterSet) WarnUnrecognized() {
	for _, k := range p.Unrecognized() {
		Log.Printf("[ParameterSet] ignoring unrecognized key %q", k)
	}
}

// applyAgentDefaults fills the two agent-scoped compliance knobs (§6) from
// a ParameterSet, falling back to whatever the caller already has (usually
// a DiseaseParams' current value) when the key is absent.
func applyAgentDefaults(p *ParameterSet, shelterDefault, withdrawDefault float64) (shelterCompliance, withdrawCompliance float64) {
	shelterCompliance = p.Float64("agent.shelter_compliance", shelterDefault)
	withdrawCompliance = p.Float64("agent.symptomatic_withdraw_compliance", withdrawDefault)
	return
}

// diseaseKeyPrefix builds the "disease_<name>." or "disease." prefix used
// to scope a disease's parameters within the flat key/value surface.
func diseaseKeyPrefix(name string) string {
	if name == "" {
		return "disease."
	}
	return "disease_" + name + "."
}

// ApplyParameters overrides a DiseaseParams' fields from its disease-scoped
// keys in a ParameterSet, leaving fields with no matching key at their
// current (default) value.
func (dp *DiseaseParams) ApplyParameters(p *ParameterSet) {
	prefix := diseaseKeyPrefix(dp.Name)

	dp.PTrans = p.Float64(prefix+"p_trans", dp.PTrans)
	dp.PAsymp = p.Float64(prefix+"p_asymp", dp.PAsymp)
	dp.VacEff = p.Float64(prefix+"vac_eff", dp.VacEff)
	dp.XmitWork = p.Float64(prefix+"xmit_work", dp.XmitWork)
	dp.THospOffset = p.Float64(prefix+"t_hosp_offset", dp.THospOffset)

	dp.ShelterCompliance, dp.SymptomaticWithdrawCompliance = applyAgentDefaults(
		p, dp.ShelterCompliance, dp.SymptomaticWithdrawCompliance)

	dp.LatentLengthAlpha = p.Float64(prefix+"latent_length_alpha", dp.LatentLengthAlpha)
	dp.LatentLengthBeta = p.Float64(prefix+"latent_length_beta", dp.LatentLengthBeta)
	dp.InfectiousLengthAlpha = p.Float64(prefix+"infectious_length_alpha", dp.InfectiousLengthAlpha)
	dp.InfectiousLengthBeta = p.Float64(prefix+"infectious_length_beta", dp.InfectiousLengthBeta)
	dp.IncubationLengthAlpha = p.Float64(prefix+"incubation_length_alpha", dp.IncubationLengthAlpha)
	dp.IncubationLengthBeta = p.Float64(prefix+"incubation_length_beta", dp.IncubationLengthBeta)
	dp.ImmuneLengthAlpha = p.Float64(prefix+"immune_length_alpha", dp.ImmuneLengthAlpha)
	dp.ImmuneLengthBeta = p.Float64(prefix+"immune_length_beta", dp.ImmuneLengthBeta)

	if arr := p.FloatArray(prefix+"xmit_hh_adult", int(numAgeGroups), nil); arr != nil {
		copy(dp.XmitHHAdult[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_hh_child", int(numAgeGroups), nil); arr != nil {
		copy(dp.XmitHHChild[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_nc_adult", int(numAgeGroups), nil); arr != nil {
		copy(dp.XmitNCAdult[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_nc_child", int(numAgeGroups), nil); arr != nil {
		copy(dp.XmitNCChild[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_hood", int(numAgeGroups), nil); arr != nil {
		copy(dp.XmitHood[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_comm", int(numAgeGroups), nil); arr != nil {
		copy(dp.XmitComm[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_school", int(numSchoolTypes), nil); arr != nil {
		copy(dp.XmitSchool[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_school_a2c", int(numSchoolTypes), nil); arr != nil {
		copy(dp.XmitSchoolA2C[:], arr)
	}
	if arr := p.FloatArray(prefix+"xmit_school_c2a", int(numSchoolTypes), nil); arr != nil {
		copy(dp.XmitSchoolC2A[:], arr)
	}

	if arr := p.FloatArray(prefix+"m_t_hosp", 3, nil); arr != nil {
		copy(dp.THosp[:], arr)
	}
	if arr := p.FloatArray(prefix+"m_CHR", int(numAgeGroups), nil); arr != nil {
		copy(dp.CHR[:], arr)
	}
	if arr := p.FloatArray(prefix+"m_CIC", int(numAgeGroups), nil); arr != nil {
		copy(dp.CIC[:], arr)
	}
	if arr := p.FloatArray(prefix+"m_CVE", int(numAgeGroups), nil); arr != nil {
		copy(dp.CVE[:], arr)
	}
	// m_hospToDeath[3][6] arrives as one row per hospital phase
	// (hospitalization, ICU, ventilator, indexed like DiseaseStat), keyed
	// m_hospToDeath_0.._2, each row a flat array over AgeGroup.
	for row := 0; row < int(numAgeGroupsHosp); row++ {
		key := prefix + "m_hospToDeath_" + strconv.Itoa(row)
		if arr := p.FloatArray(key, int(numAgeGroups), nil); arr != nil {
			copy(dp.HospToDeath[row][:], arr)
		}
	}

	dp.NumInitialCases = p.Int(prefix+"num_initial_cases", dp.NumInitialCases)
	if p.String(prefix+"initial_case_type", "rnd") == "file" {
		dp.InitialCaseType = InitialCasesFile
	}
	dp.CaseFilename = p.String(prefix+"case_filename", dp.CaseFilename)
}
