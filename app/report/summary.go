package report

import (
	"planillas/app/histogram"
	"planillas/app/record"
)

// KPIs are the headline figures of a view
type KPIs struct {
	Records       int     `json:"records"`
	TotalPay      float64 `json:"totalPay"`
	AvgPay        float64 `json:"avgPay"`
	MaxPay        float64 `json:"maxPay"`
	AvgAge        float64 `json:"avgAge"`
	HasAge        bool    `json:"hasAge"`
	Women         int     `json:"women"`
	Men           int     `json:"men"`
	Organizations int     `json:"organizations"`
}

// ContractStat is one contract type card
type ContractStat struct {
	Type   string  `json:"type"`
	Kind   string  `json:"kind"` // contrata, honorarios, planta, codigo_trabajo or ""
	Count  int     `json:"count"`
	AvgPay float64 `json:"avgPay"` // rounded to whole pesos
}

// ContractStats summarizes the view by contract type
type ContractStats struct {
	Total  int            `json:"total"`
	AvgPay float64        `json:"avgPay"` // rounded
	AvgAge float64        `json:"avgAge"` // rounded
	Top    []ContractStat `json:"top"`
}

// SexPay compares pay between women and men
type SexPay struct {
	Women       int     `json:"women"`
	Men         int     `json:"men"`
	Unknown     int     `json:"unknown"`
	WomenAvgPay float64 `json:"womenAvgPay"`
	MenAvgPay   float64 `json:"menAvgPay"`
}

// YearPoint is one year of the yearly series
type YearPoint struct {
	Year   record.Value `json:"year"`
	Count  int          `json:"count"`
	AvgPay float64      `json:"avgPay"`
	Growth float64      `json:"growth"` // % change of Count over the previous year
}

// DataQuality reports missing values and completeness percentages
type DataQuality struct {
	MissingPay      int     `json:"missingPay"`
	MissingAge      int     `json:"missingAge"`
	PayCompleteness float64 `json:"payCompleteness"`
	AgeCompleteness float64 `json:"ageCompleteness"`
}

// Cohort describes the rows matching one threshold rule
type Cohort struct {
	Count     int     `json:"count"`
	PaySum    float64 `json:"paySum"`
	AvgPay    float64 `json:"avgPay"`
	PayShare  float64 `json:"payShare"`  // % of the view's pay
	GlobalAvg float64 `json:"globalAvg"` // view average for comparison
	Women     int     `json:"women"`
	Men       int     `json:"men"`
	TopOrgs   []Entry `json:"topOrgs"`
}

// OrgSize is one organization of the largest-organizations ranking
type OrgSize struct {
	Organization string  `json:"organization"`
	Count        int     `json:"count"`
	AvgPay       float64 `json:"avgPay"`
}

// OrgCost is one organization of the cost per capita ranking
type OrgCost struct {
	Organization string  `json:"organization"`
	PerCapita    float64 `json:"perCapita"`
	Total        float64 `json:"total"`
}

// ProfessionalMix splits the view by qualification level
type ProfessionalMix struct {
	Professionals   int     `json:"professionals"`
	Technicians     int     `json:"technicians"`
	Others          int     `json:"others"`
	ProfessionalAvg float64 `json:"professionalAvg"`
	TechnicianAvg   float64 `json:"technicianAvg"`
}

// Anomalies counts suspicious records
type Anomalies struct {
	Age     int     `json:"age"`
	ZeroPay int     `json:"zeroPay"`
	Records int     `json:"records"`
	TopOrgs []Entry `json:"topOrgs"`
}

// ContractType is one entry contract type with its average pay
type ContractType struct {
	Type   string  `json:"type"`
	Count  int     `json:"count"`
	AvgPay float64 `json:"avgPay"`
}

// Liquidity compares gross pay with the estimated net pay of a parent
// organization
type Liquidity struct {
	ParentOrg string  `json:"parentOrg"`
	Gross     float64 `json:"gross"`
	Net       float64 `json:"net"`
	Count     int     `json:"count"`
	Ratio     float64 `json:"ratio"` // net / gross in %
}

// Tile is one treemap block
type Tile struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Share float64 `json:"share"` // % of the total over every parent organization
}

// Summary holds the report sections requested by a variant. Sections not
// requested are left nil.
type Summary struct {
	Sections []string `json:"sections"`

	KPIs                *KPIs               `json:"kpis,omitempty"`
	ContractStats       *ContractStats      `json:"contractStats,omitempty"`
	TopOrgsCount        []Entry             `json:"topOrgsCount,omitempty"`
	TopOrgsSpend        []Entry             `json:"topOrgsSpend,omitempty"`
	AvgPayContract      []Entry             `json:"avgPayContract,omitempty"`
	RecordsPerYear      []YearPoint         `json:"recordsPerYear,omitempty"`
	AgeDistribution     []Entry             `json:"ageDistribution,omitempty"`
	TopQualifications   []Entry             `json:"topQualifications,omitempty"`
	PayBySex            *SexPay             `json:"payBySex,omitempty"`
	MonthlyEntries      []Entry             `json:"monthlyEntries,omitempty"`
	TopAvgPayOrgs       []Entry             `json:"topAvgPayOrgs,omitempty"`
	TopProfessionalOrgs []Entry             `json:"topProfessionalOrgs,omitempty"`
	DataQuality         *DataQuality        `json:"dataQuality,omitempty"`
	YoungCohort         *Cohort             `json:"youngCohort,omitempty"`
	SeniorCohort        *Cohort             `json:"seniorCohort,omitempty"`
	EliteCohort         *Cohort             `json:"eliteCohort,omitempty"`
	BaseCohort          *Cohort             `json:"baseCohort,omitempty"`
	PayDispersion       []Entry             `json:"payDispersion,omitempty"`
	PayRatio            []Entry             `json:"payRatio,omitempty"`
	BigOrgs             []OrgSize           `json:"bigOrgs,omitempty"`
	CostPerCapita       []OrgCost           `json:"costPerCapita,omitempty"`
	YoYGrowth           []YearPoint         `json:"yoyGrowth,omitempty"`
	Anomalies           *Anomalies          `json:"anomalies,omitempty"`
	ProfessionalMix     *ProfessionalMix    `json:"professionalMix,omitempty"`
	ContractTypes       []ContractType      `json:"contractTypes,omitempty"`
	Liquidity           []Liquidity         `json:"liquidity,omitempty"`
	RoleCloud           []Entry             `json:"roleCloud,omitempty"`
	Treemap             []Tile              `json:"treemap,omitempty"`
	Raises              []Raise             `json:"raises,omitempty"`
	PayBands            []histogram.Band    `json:"payBands,omitempty"`
	PayDistribution     *histogram.Response `json:"payDistribution,omitempty"`
}
