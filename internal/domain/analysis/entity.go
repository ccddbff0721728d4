package analysis

// Verdict enum
type Verdict string

const (
	VerdictExcellent Verdict = "EXCELLENT"
	VerdictGood      Verdict = "GOOD"
	VerdictFair      Verdict = "FAIR"
	VerdictPoor      Verdict = "POOR"
	VerdictAvoid     Verdict = "AVOID"
)

// CategoryScore is one weighted scorecard category
type CategoryScore struct {
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

// Scorecard value object
type Scorecard struct {
	OverallScore int                      `json:"overallScore"`
	Verdict      Verdict                  `json:"verdict"`
	Categories   map[string]CategoryScore `json:"categories"`
	Strengths    []string                 `json:"strengths"`
	Weaknesses   []string                 `json:"weaknesses"`
}

type RentalDemand struct {
	Level   string `json:"level"`
	Trend   string `json:"trend"`
	Details string `json:"details"`
}

type MarketTrends struct {
	PriceGrowth  string `json:"priceGrowth"`
	RentalGrowth string `json:"rentalGrowth"`
}

type GrowthProjection struct {
	FiveYear string `json:"fiveYear"`
	TenYear  string `json:"tenYear"`
}

type LocationInsights struct {
	NeighborhoodProfile string           `json:"neighborhoodProfile"`
	RentalDemand        RentalDemand     `json:"rentalDemand"`
	MarketTrends        MarketTrends     `json:"marketTrends"`
	GrowthProjection    GrowthProjection `json:"growthProjection"`
	Risks               []string         `json:"risks"`
}

type Action struct {
	Priority    int    `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type Projection struct {
	TotalEquity      float64 `json:"totalEquity"`
	CashOnCashReturn float64 `json:"cashOnCashReturn"`
}

type FinancialProjections struct {
	FiveYear   Projection `json:"fiveYear"`
	TenYear    Projection `json:"tenYear"`
	TwentyYear Projection `json:"twentyYear"`
}

type Recommendations struct {
	Actions              []Action             `json:"actions"`
	FinancialProjections FinancialProjections `json:"financialProjections"`
}

// Result is the fixed shape every analysis response conforms to,
// whether model-derived or fallback.
type Result struct {
	Scorecard        Scorecard        `json:"scorecard"`
	LocationInsights LocationInsights `json:"locationInsights"`
	Recommendations  Recommendations  `json:"recommendations"`
}

// Usage holds the token counters reported by the inference provider
type Usage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

const retrySummary = "Analysis could not be completed - please try again."

// FallbackResult is substituted whenever the model reply cannot be
// turned into a usable analysis. It always satisfies the Result schema.
func FallbackResult() *Result {
	return &Result{
		Scorecard: Scorecard{
			OverallScore: 50,
			Verdict:      VerdictFair,
			Categories: map[string]CategoryScore{
				"cashFlow": {Score: 50, Label: "Fair", Summary: retrySummary},
				"yield":    {Score: 50, Label: "Fair", Summary: retrySummary},
				"risk":     {Score: 50, Label: "Moderate", Summary: retrySummary},
				"growth":   {Score: 50, Label: "Fair", Summary: retrySummary},
				"location": {Score: 50, Label: "Fair", Summary: retrySummary},
			},
			Strengths:  []string{"Data received successfully", "Calculator metrics computed"},
			Weaknesses: []string{"AI analysis could not be generated", "Please retry the analysis"},
		},
		LocationInsights: LocationInsights{
			NeighborhoodProfile: "Location analysis could not be completed. Please try again.",
			RentalDemand:        RentalDemand{Level: "Unknown", Trend: "Unknown", Details: "Analysis unavailable"},
			MarketTrends:        MarketTrends{PriceGrowth: "Unknown", RentalGrowth: "Unknown"},
			GrowthProjection:    GrowthProjection{FiveYear: "Unknown", TenYear: "Unknown"},
			Risks:               []string{"Analysis incomplete - please retry"},
		},
		Recommendations: Recommendations{
			Actions: []Action{
				{
					Priority:    1,
					Title:       "Retry Analysis",
					Description: "The AI analysis did not complete successfully. Please try again.",
					Impact:      "High",
				},
			},
			FinancialProjections: FinancialProjections{},
		},
	}
}
