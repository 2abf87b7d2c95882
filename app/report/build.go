package report

import (
	"math"
	"sort"

	"planillas/app/histogram"
)

// Report names accepted by Build
const (
	KPIsReport                = "kpis"
	ContractStatsReport       = "contract_stats"
	TopOrgsCountReport        = "top_orgs_count"
	TopOrgsSpendReport        = "top_orgs_spend"
	AvgPayContractReport      = "avg_pay_contract"
	RecordsPerYearReport      = "records_per_year"
	AgeDistributionReport     = "age_distribution"
	TopQualificationsReport   = "top_qualifications"
	PayBySexReport            = "pay_by_sex"
	MonthlyEntriesReport      = "monthly_entries"
	TopAvgPayOrgsReport       = "top_avg_pay_orgs"
	TopProfessionalOrgsReport = "top_professional_orgs"
	DataQualityReport         = "data_quality"
	YoungCohortReport         = "young_cohort"
	SeniorCohortReport        = "senior_cohort"
	EliteCohortReport         = "elite_cohort"
	BaseCohortReport          = "base_cohort"
	PayDispersionReport       = "pay_dispersion"
	PayRatioReport            = "pay_ratio"
	BigOrgsReport             = "big_orgs"
	CostPerCapitaReport       = "cost_per_capita"
	YoYGrowthReport           = "yoy_growth"
	AnomaliesReport           = "anomalies"
	ProfessionalMixReport     = "professional_mix"
	ContractTypesReport       = "contract_types"
	LiquidityReport           = "liquidity"
	RoleCloudReport           = "role_cloud"
	TreemapReport             = "treemap"
	RaisesReport              = "raises"
	PayBandsReport            = "pay_bands"
	PayDistributionReport     = "pay_distribution"
)

// Ranking lengths
const (
	defaultTop        = 10
	topQualifications = 8
	topContractTypes  = 8
	topRoles          = 40
	topTiles          = 15
	topContractCards  = 3
)

var monthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

type builder func(a *Accumulator, s *Summary)

var builders = map[string]builder{
	KPIsReport:                buildKPIs,
	ContractStatsReport:       buildContractStats,
	TopOrgsCountReport:        buildTopOrgsCount,
	TopOrgsSpendReport:        buildTopOrgsSpend,
	AvgPayContractReport:      buildAvgPayContract,
	RecordsPerYearReport:      func(a *Accumulator, s *Summary) { s.RecordsPerYear = a.yearSeries() },
	AgeDistributionReport:     buildAgeDistribution,
	TopQualificationsReport:   func(a *Accumulator, s *Summary) { s.TopQualifications = topN(counts(a.quals), topQualifications) },
	PayBySexReport:            buildPayBySex,
	MonthlyEntriesReport:      buildMonthlyEntries,
	TopAvgPayOrgsReport:       buildTopAvgPayOrgs,
	TopProfessionalOrgsReport: buildTopProfessionalOrgs,
	DataQualityReport:         buildDataQuality,
	YoungCohortReport:         func(a *Accumulator, s *Summary) { s.YoungCohort = a.cohortReport(&a.young) },
	SeniorCohortReport:        func(a *Accumulator, s *Summary) { s.SeniorCohort = a.cohortReport(&a.senior) },
	EliteCohortReport:         func(a *Accumulator, s *Summary) { s.EliteCohort = a.cohortReport(&a.elite) },
	BaseCohortReport:          func(a *Accumulator, s *Summary) { s.BaseCohort = a.cohortReport(&a.base) },
	PayDispersionReport:       buildPayDispersion,
	PayRatioReport:            buildPayRatio,
	BigOrgsReport:             buildBigOrgs,
	CostPerCapitaReport:       buildCostPerCapita,
	YoYGrowthReport:           func(a *Accumulator, s *Summary) { s.YoYGrowth = a.yearSeries() },
	AnomaliesReport:           buildAnomalies,
	ProfessionalMixReport:     buildProfessionalMix,
	ContractTypesReport:       buildContractTypes,
	LiquidityReport:           buildLiquidity,
	RoleCloudReport:           func(a *Accumulator, s *Summary) { s.RoleCloud = topN(counts(a.roles), topRoles) },
	TreemapReport:             buildTreemap,
	RaisesReport:              buildRaises,
	PayBandsReport:            buildPayBands,
	PayDistributionReport:     buildPayDistribution,
}

// Known reports whether name is a report Build understands
func Known(name string) bool {
	_, ok := builders[name]
	return ok
}

// Names returns every report name in alphabetical order
func Names() []string {
	out := make([]string, 0, len(builders))
	for name := range builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build derives the named sections from an accumulator. Unknown and
// repeated names are skipped.
func Build(a *Accumulator, names []string) *Summary {
	s := &Summary{}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		b, ok := builders[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		b(a, s)
		s.Sections = append(s.Sections, name)
	}
	return s
}

func buildKPIs(a *Accumulator, s *Summary) {
	s.KPIs = &KPIs{
		Records:       a.Rows,
		TotalPay:      a.PaySum,
		AvgPay:        a.AvgPay(),
		MaxPay:        a.PayMax,
		AvgAge:        a.AvgAge(),
		HasAge:        a.AgeCount > 0,
		Women:         a.sex["F"],
		Men:           a.sex["M"],
		Organizations: a.Organizations(),
	}
}

func buildContractStats(a *Accumulator, s *Summary) {
	ranked := topN(entries(a.contractCards, func(p *payStat) float64 { return float64(p.count) }, nil), topContractCards)
	top := make([]ContractStat, len(ranked))
	for i, e := range ranked {
		p, _ := a.contractCards.get(e.Label)
		top[i] = ContractStat{
			Type:   e.Label,
			Kind:   contractKind(e.Label),
			Count:  p.count,
			AvgPay: math.Round(ratio(p.paySum, float64(p.payCount))),
		}
	}
	s.ContractStats = &ContractStats{
		Total:  a.Rows,
		AvgPay: math.Round(a.AvgPay()),
		AvgAge: math.Round(a.AvgAge()),
		Top:    top,
	}
}

func buildTopOrgsCount(a *Accumulator, s *Summary) {
	s.TopOrgsCount = topN(entries(a.orgs, func(o *orgStat) float64 { return float64(o.count) }, nil), defaultTop)
}

func buildTopOrgsSpend(a *Accumulator, s *Summary) {
	s.TopOrgsSpend = topN(entries(a.orgs, func(o *orgStat) float64 { return o.paySum }, nil), defaultTop)
}

func buildAvgPayContract(a *Accumulator, s *Summary) {
	avg := entries(a.contracts,
		func(p *payStat) float64 { return math.Round(p.paySum / float64(p.payCount)) },
		func(p *payStat) bool { return p.payCount > 0 })
	s.AvgPayContract = topN(avg, -1)
}

func buildAgeDistribution(a *Accumulator, s *Summary) {
	out := counts(a.ages)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	s.AgeDistribution = out
}

func buildPayBySex(a *Accumulator, s *Summary) {
	s.PayBySex = &SexPay{
		Women:       a.sex["F"],
		Men:         a.sex["M"],
		Unknown:     a.sex["U"],
		WomenAvgPay: ratio(a.sexPay["F"].paySum, float64(a.sexPay["F"].payCount)),
		MenAvgPay:   ratio(a.sexPay["M"].paySum, float64(a.sexPay["M"].payCount)),
	}
}

func buildMonthlyEntries(a *Accumulator, s *Summary) {
	out := make([]Entry, 12)
	for i, c := range a.months {
		out[i] = Entry{Label: monthLabels[i], Value: float64(c)}
	}
	s.MonthlyEntries = out
}

func buildTopAvgPayOrgs(a *Accumulator, s *Summary) {
	minRows := a.cfg.Thresholds.MinOrgRows
	avg := entries(a.orgs,
		func(o *orgStat) float64 { return ratio(o.paySum, float64(o.payCount)) },
		func(o *orgStat) bool { return o.count > minRows })
	s.TopAvgPayOrgs = topN(avg, defaultTop)
}

func buildTopProfessionalOrgs(a *Accumulator, s *Summary) {
	s.TopProfessionalOrgs = topN(entries(a.orgs, func(o *orgStat) float64 { return float64(o.professionals) }, nil), defaultTop)
}

func buildDataQuality(a *Accumulator, s *Summary) {
	dq := &DataQuality{MissingPay: a.MissingPay, MissingAge: a.MissingAge}
	if a.Rows > 0 {
		dq.PayCompleteness = 100 - float64(a.MissingPay)/float64(a.Rows)*100
		dq.AgeCompleteness = 100 - float64(a.MissingAge)/float64(a.Rows)*100
	}
	s.DataQuality = dq
}

func (a *Accumulator) cohortReport(c *cohort) *Cohort {
	return &Cohort{
		Count:     c.count,
		PaySum:    c.paySum,
		AvgPay:    ratio(c.paySum, float64(c.payCount)),
		PayShare:  ratio(c.paySum, a.PaySum) * 100,
		GlobalAvg: a.AvgPay(),
		Women:     c.sex["F"],
		Men:       c.sex["M"],
		TopOrgs:   topN(counts(c.orgs), defaultTop),
	}
}

func buildPayDispersion(a *Accumulator, s *Summary) {
	minRows := a.cfg.Thresholds.SpreadOrgRows
	spread := entries(a.orgs,
		func(o *orgStat) float64 { return o.maxPay - o.minPay },
		func(o *orgStat) bool { return o.count > minRows && o.minPay > 0 })
	s.PayDispersion = topN(spread, defaultTop)
}

func buildPayRatio(a *Accumulator, s *Summary) {
	minRows := a.cfg.Thresholds.SpreadOrgRows
	minPay := a.cfg.Thresholds.RatioMinPay
	ratios := entries(a.orgs,
		func(o *orgStat) float64 { return math.Round(o.maxPay/o.minPay*10) / 10 },
		func(o *orgStat) bool { return o.count > minRows && o.minPay > minPay })
	s.PayRatio = topN(ratios, defaultTop)
}

func buildBigOrgs(a *Accumulator, s *Summary) {
	ranked := topN(entries(a.orgs, func(o *orgStat) float64 { return float64(o.count) }, nil), defaultTop)
	out := make([]OrgSize, len(ranked))
	for i, e := range ranked {
		o, _ := a.orgs.get(e.Label)
		out[i] = OrgSize{Organization: e.Label, Count: o.count, AvgPay: ratio(o.paySum, float64(o.payCount))}
	}
	s.BigOrgs = out
}

func buildCostPerCapita(a *Accumulator, s *Summary) {
	minRows := a.cfg.Thresholds.MinOrgRows
	ranked := topN(entries(a.orgs,
		func(o *orgStat) float64 { return o.paySum / float64(o.count) },
		func(o *orgStat) bool { return o.count > minRows }), defaultTop)
	out := make([]OrgCost, len(ranked))
	for i, e := range ranked {
		o, _ := a.orgs.get(e.Label)
		out[i] = OrgCost{Organization: e.Label, PerCapita: e.Value, Total: o.paySum}
	}
	s.CostPerCapita = out
}

// yearSeries returns per-year counts, average pay and count growth in
// ascending year order
func (a *Accumulator) yearSeries() []YearPoint {
	years := a.sortedYears()
	countsByYear := make([]float64, len(years))
	for i, y := range years {
		countsByYear[i] = float64(y.count)
	}
	growth := Growth(countsByYear)

	out := make([]YearPoint, len(years))
	for i, y := range years {
		out[i] = YearPoint{
			Year:   y.value,
			Count:  y.count,
			AvgPay: ratio(y.paySum, float64(y.payCount)),
			Growth: growth[i],
		}
	}
	return out
}

// Growth returns the percentage change of each value over the previous
// one. The first value, and any value whose predecessor is 0, report 0.
func Growth(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		out[i] = (values[i] - prev) / prev * 100
	}
	return out
}

func buildAnomalies(a *Accumulator, s *Summary) {
	s.Anomalies = &Anomalies{
		Age:     a.ageAnomalies,
		ZeroPay: a.zeroPay,
		Records: a.Rows,
		TopOrgs: topN(counts(a.anomalyOrgs), defaultTop),
	}
}

func buildProfessionalMix(a *Accumulator, s *Summary) {
	s.ProfessionalMix = &ProfessionalMix{
		Professionals:   a.levelCount[levelProfessional],
		Technicians:     a.levelCount[levelTechnical],
		Others:          a.levelCount[levelOther],
		ProfessionalAvg: ratio(a.levelSum[levelProfessional], float64(a.levelPayCount[levelProfessional])),
		TechnicianAvg:   ratio(a.levelSum[levelTechnical], float64(a.levelPayCount[levelTechnical])),
	}
}

func buildContractTypes(a *Accumulator, s *Summary) {
	ranked := topN(entries(a.entryTypes, func(p *payStat) float64 { return float64(p.count) }, nil), topContractTypes)
	out := make([]ContractType, len(ranked))
	for i, e := range ranked {
		p, _ := a.entryTypes.get(e.Label)
		out[i] = ContractType{Type: e.Label, Count: p.count, AvgPay: ratio(p.paySum, float64(p.payCount))}
	}
	s.ContractTypes = out
}

func buildLiquidity(a *Accumulator, s *Summary) {
	ranked := topN(entries(a.parents, func(l *liquidity) float64 { return l.gross }, nil), defaultTop)
	out := make([]Liquidity, len(ranked))
	for i, e := range ranked {
		l, _ := a.parents.get(e.Label)
		out[i] = Liquidity{
			ParentOrg: e.Label,
			Gross:     l.gross,
			Net:       l.net,
			Count:     l.count,
			Ratio:     ratio(l.net, l.gross) * 100,
		}
	}
	s.Liquidity = out
}

func buildTreemap(a *Accumulator, s *Summary) {
	all := entries(a.parents, func(l *liquidity) float64 { return l.gross }, nil)
	total := 0.0
	for _, e := range all {
		total += e.Value
	}
	ranked := topN(all, topTiles)
	out := make([]Tile, len(ranked))
	for i, e := range ranked {
		out[i] = Tile{Label: e.Label, Value: e.Value, Share: ratio(e.Value, total) * 100}
	}
	s.Treemap = out
}

func buildRaises(a *Accumulator, s *Summary) {
	out := append([]Raise(nil), a.raises...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Diff > out[j].Diff })
	if len(out) > defaultTop {
		out = out[:defaultTop]
	}
	s.Raises = out
}

func buildPayBands(a *Accumulator, s *Summary) {
	s.PayBands = histogram.CountBands(a.positivePays, a.cfg.PayBreakpoints)
}

func buildPayDistribution(a *Accumulator, s *Summary) {
	s.PayDistribution = histogram.FromValues(a.positivePays, 0, a.cfg.MaxBuckets)
}
