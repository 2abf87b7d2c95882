package report

import (
	"sort"
	"strings"

	"planillas/app/histogram"
	"planillas/app/query"
	"planillas/app/record"
)

type orgStat struct {
	count         int
	paySum        float64 // numeric pay only
	payCount      int
	professionals int
	minPay        float64 // positive pay only, 0 when none
	maxPay        float64
}

type payStat struct {
	count    int
	paySum   float64
	payCount int
}

type cohort struct {
	count    int
	paySum   float64
	payCount int
	orgs     *countTally
	sex      map[string]int
}

func newCohort() cohort {
	return cohort{orgs: newTally[int](), sex: map[string]int{}}
}

func (c *cohort) add(org, sex string, pay float64, hasPay bool) {
	c.count++
	if hasPay {
		c.paySum += pay
		c.payCount++
	}
	inc(c.orgs, org)
	c.sex[sex]++
}

type liquidity struct {
	gross float64
	net   float64
	count int
}

type yearStat struct {
	value record.Value
	payStat
}

// Raise is a record whose exit pay grew over its entry pay
type Raise struct {
	Name         string  `json:"name"`
	Organization string  `json:"organization"`
	Entry        float64 `json:"entry"`
	Exit         float64 `json:"exit"`
	Diff         float64 `json:"diff"`
	Pct          float64 `json:"pct"`
}

// Accumulator holds every counter the reports derive from, filled by one
// pass over a view
type Accumulator struct {
	cfg Config

	Rows       int
	PaySum     float64
	PayCount   int
	PayMax     float64
	MissingPay int
	MissingAge int
	AgeSum     float64
	AgeCount   int

	orgs          *tally[orgStat]
	contracts     *tally[payStat] // exit, else entry contract, else NoContract
	contractCards *tally[payStat] // exit, else entry contract, else Unclassified
	entryTypes    *tally[payStat]
	years         *tally[yearStat]
	months        [12]int
	quals         *countTally
	ages          *countTally
	sex           map[string]int
	sexPay        map[string]*payStat
	positivePays  []float64

	young, senior, elite, base cohort

	levelCount    [3]int
	levelSum      [3]float64
	levelPayCount [3]int

	ageAnomalies int
	zeroPay      int
	anomalyOrgs  *countTally
	parents      *tally[liquidity]
	roles        *countTally
	raises       []Raise
}

// NewAccumulator returns an empty accumulator
func NewAccumulator(cfg Config) *Accumulator {
	if cfg.Ages == nil {
		cfg.Ages = DefaultAgeTable
	}
	if cfg.PayBreakpoints == nil {
		cfg.PayBreakpoints = histogram.PayBreakpoints
	}
	return &Accumulator{
		cfg:           cfg,
		orgs:          newTally[orgStat](),
		contracts:     newTally[payStat](),
		contractCards: newTally[payStat](),
		entryTypes:    newTally[payStat](),
		years:         newTally[yearStat](),
		quals:         newTally[int](),
		ages:          newTally[int](),
		sex:           map[string]int{"F": 0, "M": 0, "U": 0},
		sexPay:        map[string]*payStat{"F": {}, "M": {}},
		young:         newCohort(),
		senior:        newCohort(),
		elite:         newCohort(),
		base:          newCohort(),
		anomalyOrgs:   newTally[int](),
		parents:       newTally[liquidity](),
		roles:         newTally[int](),
	}
}

// Accumulate runs one pass over rows
func Accumulate(rows []*record.Row, cfg Config) *Accumulator {
	acc := NewAccumulator(cfg)
	for _, row := range rows {
		acc.Add(row)
	}
	return acc
}

// Add folds one row into every counter. Non-numeric pay is counted as
// missing and left out of sums; threshold and band rules see it as 0.
func (a *Accumulator) Add(row *record.Row) {
	th := a.cfg.Thresholds
	a.Rows++

	org := row.Get(record.FieldOrganization).TextOr(NoOrganization)
	qual := row.Get(record.FieldQualification).TextOr(NoQualification)
	exitContract := row.Get(record.FieldExitContractType)
	entryContract := row.Get(record.FieldContractType)
	contract := exitContract.TextOr(entryContract.TextOr(NoContract))
	card := exitContract.TextOr(entryContract.TextOr(Unclassified))
	sex := NormalizeSex(row.Get(record.FieldSex))

	pay, hasPay := row.Pay()
	if hasPay {
		a.PaySum += pay
		a.PayCount++
		if a.PayCount == 1 || pay > a.PayMax {
			a.PayMax = pay
		}
	} else {
		a.MissingPay++
		pay = 0
	}

	age, ageLabel, hasAge := a.cfg.Ages.Age(row.Get(record.FieldAgeBracket))
	if hasAge {
		a.AgeSum += age
		a.AgeCount++
	} else {
		a.MissingAge++
	}
	inc(a.ages, ageLabel)
	a.sex[sex]++

	cs := a.contracts.at(contract)
	cs.count++
	cc := a.contractCards.at(card)
	cc.count++
	if hasPay {
		cc.paySum += pay
		cc.payCount++
	}
	inc(a.quals, qual)
	if m, ok := month(row.Get(record.FieldMonth)); ok {
		a.months[m-1]++
	}

	if pay > 0 {
		cs.paySum += pay
		cs.payCount++
		if sp, ok := a.sexPay[sex]; ok {
			sp.paySum += pay
			sp.payCount++
		}
		a.positivePays = append(a.positivePays, pay)
	}

	st := a.orgs.at(org)
	st.count++
	if hasPay {
		st.paySum += pay
		st.payCount++
	}
	if pay > 0 {
		if st.minPay == 0 || pay < st.minPay {
			st.minPay = pay
		}
		if pay > st.maxPay {
			st.maxPay = pay
		}
	}
	lowerQual := strings.ToLower(qual)
	if strings.Contains(lowerQual, "profesional") {
		st.professionals++
	}

	if y := row.Get(record.FieldYear); !y.IsFalsy() {
		ys := a.years.at(y.Text())
		ys.value = y
		ys.count++
		if hasPay {
			ys.paySum += pay
			ys.payCount++
		}
	}

	if hasAge && age > 0 && age < th.YoungAge {
		a.young.add(org, sex, pay, hasPay)
	}
	if hasAge && age > th.SeniorAge {
		a.senior.add(org, sex, pay, hasPay)
	}
	if pay > th.ElitePay {
		a.elite.add(org, sex, pay, hasPay)
	}
	if pay > 0 && pay < th.BasePay {
		a.base.add(org, sex, pay, hasPay)
	}

	level := qualificationLevel(lowerQual)
	a.levelCount[level]++
	if hasPay {
		a.levelSum[level] += pay
		a.levelPayCount[level]++
	}

	ageAnomaly := hasAge && (age < th.MinAge || age > th.MaxAge)
	if ageAnomaly {
		a.ageAnomalies++
	}
	if pay == 0 {
		a.zeroPay++
	}
	if ageAnomaly || pay == 0 {
		inc(a.anomalyOrgs, org)
	}

	et := a.entryTypes.at(entryContract.TextOr(NoContract))
	et.count++
	if hasPay {
		et.paySum += pay
		et.payCount++
	}

	lq := a.parents.at(row.Get(record.FieldParentOrg).TextOr(Unclassified))
	lq.gross += pay
	lq.net += pay * th.NetRatio
	lq.count++

	if role := strings.ToUpper(row.Get(record.FieldRoleOut).TextOr("")); len([]rune(role)) > 2 && role != "SIN ESPECIFICAR" {
		inc(a.roles, role)
	}

	if entry, ok := row.Get(record.FieldGrossPayIn).Float(); ok && entry > th.RaiseMinEntry && pay > entry {
		diff := pay - entry
		if pct := diff / entry * 100; pct < th.RaiseMaxPct {
			a.raises = append(a.raises, Raise{
				Name:         row.Get(record.FieldName).Text(),
				Organization: row.Get(record.FieldOrganization).Text(),
				Entry:        entry,
				Exit:         pay,
				Diff:         diff,
				Pct:          pct,
			})
		}
	}
}

// AvgPay is the mean of numeric pays, 0 when there are none
func (a *Accumulator) AvgPay() float64 {
	return ratio(a.PaySum, float64(a.PayCount))
}

// AvgAge is the mean of resolved ages, 0 when there are none
func (a *Accumulator) AvgAge() float64 {
	return ratio(a.AgeSum, float64(a.AgeCount))
}

// Organizations is the number of distinct organizations seen
func (a *Accumulator) Organizations() int { return a.orgs.len() }

// sortedYears returns the year groups in ascending year order
func (a *Accumulator) sortedYears() []*yearStat {
	out := make([]*yearStat, 0, a.years.len())
	for _, k := range a.years.order {
		out = append(out, a.years.m[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return query.Compare(out[i].value, out[j].value) < 0
	})
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
