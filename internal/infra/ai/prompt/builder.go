package prompt

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
)

const notSpecified = "Not specified"

// schemaExample is the literal response contract appended to every prompt.
// The model must return this exact structure with nothing around it.
const schemaExample = `{
  "scorecard": {
    "overallScore": <0-100 integer>,
    "verdict": "<EXCELLENT|GOOD|FAIR|POOR|AVOID>",
    "categories": {
      "cashFlow": {"score": <0-100>, "label": "<Excellent|Good|Fair|Poor>", "summary": "<1 sentence>"},
      "yield": {"score": <0-100>, "label": "<Excellent|Good|Fair|Poor>", "summary": "<1 sentence>"},
      "risk": {"score": <0-100>, "label": "<Low|Moderate|High|Very High>", "summary": "<1 sentence>"},
      "growth": {"score": <0-100>, "label": "<Excellent|Good|Fair|Poor>", "summary": "<1 sentence>"},
      "location": {"score": <0-100>, "label": "<Excellent|Good|Fair|Poor>", "summary": "<1 sentence>"}
    },
    "strengths": ["<strength 1>", "<strength 2>", "<strength 3>"],
    "weaknesses": ["<weakness 1>", "<weakness 2>", "<weakness 3>"]
  },
  "locationInsights": {
    "neighborhoodProfile": "<2-3 sentences about the area>",
    "rentalDemand": {"level": "<High|Medium|Low>", "trend": "<Growing|Stable|Declining>", "details": "<1 sentence>"},
    "marketTrends": {"priceGrowth": "<X-Y% annually>", "rentalGrowth": "<X-Y% annually>"},
    "growthProjection": {"fiveYear": "<X-Y% appreciation>", "tenYear": "<X-Y% appreciation>"},
    "risks": ["<risk 1>", "<risk 2>"]
  },
  "recommendations": {
    "actions": [
      {"priority": 1, "title": "<action title>", "description": "<1-2 sentences>", "impact": "<High|Medium|Low>"},
      {"priority": 2, "title": "<action title>", "description": "<1-2 sentences>", "impact": "<High|Medium|Low>"},
      {"priority": 3, "title": "<action title>", "description": "<1-2 sentences>", "impact": "<High|Medium|Low>"}
    ],
    "financialProjections": {
      "fiveYear": {"totalEquity": <number>, "cashOnCashReturn": <decimal>},
      "tenYear": {"totalEquity": <number>, "cashOnCashReturn": <decimal>},
      "twentyYear": {"totalEquity": <number>, "cashOnCashReturn": <decimal>}
    }
  }
}`

// Build renders the full analyst prompt for one request. Pure function of
// its input: required financial fields error out when absent, optional
// detail fields fall back to a placeholder.
func Build(req analysis.Request) (string, error) {
	currency := req.Currency()
	if currency == "" {
		return "", fmt.Errorf("%w: currency", analysis.ErrMissingField)
	}

	pd := req.Group("propertyData")
	income := req.Group("incomeData")
	expenses := req.Group("expenseData")
	metrics := req.Group("calculatedMetrics")
	loc := req.Group("location")

	price, err := requireNum(pd, "propertyData", "price")
	if err != nil {
		return "", err
	}
	deposit, err := requireNum(pd, "propertyData", "deposit")
	if err != nil {
		return "", err
	}
	loanAmount, err := requireNum(pd, "propertyData", "loanAmount")
	if err != nil {
		return "", err
	}
	interestRate, err := requireNum(pd, "propertyData", "interestRate")
	if err != nil {
		return "", err
	}
	loanTermYears, err := requireNum(pd, "propertyData", "loanTermYears")
	if err != nil {
		return "", err
	}
	monthlyRent, err := requireNum(income, "incomeData", "monthlyRent")
	if err != nil {
		return "", err
	}
	rentIncrease, err := requireNum(income, "incomeData", "annualRentIncrease")
	if err != nil {
		return "", err
	}
	vacancyMonths, err := requireNum(income, "incomeData", "vacancyMonths")
	if err != nil {
		return "", err
	}
	expenseVals := map[string]float64{}
	for _, k := range []string{
		"monthlyRates", "monthlyLevies", "monthlyInsurance",
		"monthlyWaterElec", "monthlyWifi", "monthlySecurity",
		"maintenancePercent", "commissionPercent", "cleaningPercent",
		"annualExpenseIncrease",
	} {
		v, err := requireNum(expenses, "expenseData", k)
		if err != nil {
			return "", err
		}
		expenseVals[k] = v
	}

	var b strings.Builder

	fmt.Fprintf(&b, `You are a JSON-only API. You output ONLY valid JSON with no other text.

TASK: Analyze this South African property investment and return a JSON response.

CRITICAL RULES:
1. Output ONLY the JSON object - no explanations, no markdown, no text before or after
2. Use the EXACT structure shown at the end of this prompt
3. All numbers must be raw (use 1450000 not 1,450,000)
4. Start your response with { and end with }

## Financial Data
- Purchase Price: %s %s
- Deposit: %s %s
- Loan Amount: %s %s
- Interest Rate: %s%%
- Loan Term: %s years
`,
		currency, amount(price),
		currency, amount(deposit),
		currency, amount(loanAmount),
		plain(interestRate),
		plain(loanTermYears),
	)

	if req.HasGroup("propertyDetails") {
		writeDetailsSection(&b, req.Group("propertyDetails"))
	}

	fmt.Fprintf(&b, `
## Location
- Suburb: %s
- City: %s
- Province: %s
- Country: %s

## Income Data
- Monthly Rent: %s %s
- Annual Rent Increase: %s%%
- Vacancy: %s months/year

## Monthly Expenses
- Rates: %s %s
- Levies: %s %s
- Insurance: %s %s
- Water/Electricity: %s %s
- WiFi: %s %s
- Security: %s %s
- Maintenance: %s%% of rent
- Agent Commission: %s%% of rent
- Cleaning: %s%% of rent
- Annual Expense Increase: %s%%

## Pre-Calculated Metrics
- Monthly Bond Payment: %s %s
- Year 1 Monthly Cashflow: %s %s
- Year 1 Yearly Cashflow: %s %s
- Break-even Year: %s
- Required Deposit for Break-even: %s %s
- Gross Yield: %.2f%%
- Net Yield: %.2f%%
`,
		optString(loc, "suburb"),
		optString(loc, "city"),
		optString(loc, "province"),
		stringOr(loc, "country", "South Africa"),
		currency, amount(monthlyRent),
		plain(rentIncrease),
		plain(vacancyMonths),
		currency, plain(expenseVals["monthlyRates"]),
		currency, plain(expenseVals["monthlyLevies"]),
		currency, plain(expenseVals["monthlyInsurance"]),
		currency, plain(expenseVals["monthlyWaterElec"]),
		currency, plain(expenseVals["monthlyWifi"]),
		currency, plain(expenseVals["monthlySecurity"]),
		plain(expenseVals["maintenancePercent"]),
		plain(expenseVals["commissionPercent"]),
		plain(expenseVals["cleaningPercent"]),
		plain(expenseVals["annualExpenseIncrease"]),
		currency, money2(optNum(metrics, "monthlyBondPayment")),
		currency, money2(optNum(metrics, "year1MonthlyCashflow")),
		currency, money2(optNum(metrics, "year1YearlyCashflow")),
		anyOr(metrics, "breakEvenYear", "N/A"),
		currency, money2(optNum(metrics, "requiredDepositForBreakEven")),
		optNum(metrics, "grossYield"),
		optNum(metrics, "netYield"),
	)

	writeProjectionSummary(&b, currency, metrics)

	fmt.Fprintf(&b, `
Consider these SA-specific factors in your analysis:
- Load shedding readiness significantly impacts tenant demand and rental premiums
- Fibre availability is increasingly important for remote workers
- Security features are crucial for SA rental properties
- Body corporate health affects long-term investment viability
- Short-term rental allowance can significantly impact yield potential

Return ONLY valid JSON (no markdown, no explanation) in this EXACT format:
%s

Scoring guidelines:
- overallScore: 80+ = EXCELLENT, 65-79 = GOOD, 50-64 = FAIR, 35-49 = POOR, <35 = AVOID
- Consider SA market conditions, current interest rates (%s%%), and location-specific factors
- Be realistic about %s's rental market in %s`,
		schemaExample,
		plain(interestRate),
		stringOr(loc, "suburb", "the area"),
		stringOr(loc, "city", "South Africa"),
	)

	return b.String(), nil
}

func writeDetailsSection(b *strings.Builder, pd map[string]any) {
	fmt.Fprintf(b, `
## Property Details
- Property Name: %s
- Complex Name: %s
- Bedrooms: %s
- Bathrooms: %s
- Square Meters: %s
- Floor Level: %s
- Parking Bays: %s
- Building Age: %s years

## SA Infrastructure
- Load Shedding Ready: %s
- Fibre Available: %s
- Water Backup: %s

## Security & Building
- 24hr Security: %s
- Access Control: %s
- CCTV Coverage: %s

## Body Corporate
- Reserve Fund Adequate: %s
- Special Levy History: %s

## Rental Strategy
- Short-term Allowed: %s
- Pet Friendly: %s
- Furnished Status: %s
`,
		optString(pd, "propertyName"),
		optString(pd, "complexName"),
		anyOr(pd, "bedrooms", notSpecified),
		anyOr(pd, "bathrooms", notSpecified),
		anyOr(pd, "squareMeters", notSpecified),
		anyOr(pd, "floorLevel", notSpecified),
		anyOr(pd, "parkingBays", notSpecified),
		anyOr(pd, "buildingAge", notSpecified),
		anyOr(pd, "loadSheddingReady", notSpecified),
		yesNo(pd, "fibreAvailable"),
		yesNo(pd, "waterBackup"),
		yesNo(pd, "security24hr"),
		optString(pd, "accessControlType"),
		yesNo(pd, "cctvCoverage"),
		yesNo(pd, "reserveFundAdequate"),
		yesNo(pd, "specialLevyHistory"),
		yesNo(pd, "shortTermAllowed"),
		yesNo(pd, "petFriendly"),
		optString(pd, "furnished"),
	)
}

// writeProjectionSummary emits the 20-year cashflow summary when the
// calculator sent a full projection table; shorter tables are skipped.
func writeProjectionSummary(b *strings.Builder, currency string, metrics map[string]any) {
	projections, _ := metrics["yearlyProjections"].([]any)
	if len(projections) < 20 {
		return
	}
	cashflow := func(i int) float64 {
		year, _ := projections[i].(map[string]any)
		return optNum(year, "yearlyCashflow")
	}
	fmt.Fprintf(b, `
## 20-Year Projection Summary
- Year 1 Cashflow: %s %s
- Year 5 Cashflow: %s %s
- Year 10 Cashflow: %s %s
- Year 20 Cashflow: %s %s
`,
		currency, money2(cashflow(0)),
		currency, money2(cashflow(4)),
		currency, money2(cashflow(9)),
		currency, money2(cashflow(19)),
	)
}

//
// ==== field access ====
//

func requireNum(group map[string]any, groupName, key string) (float64, error) {
	v, ok := group[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", analysis.ErrMissingField, groupName, key)
	}
	return v, nil
}

func optNum(group map[string]any, key string) float64 {
	v, _ := group[key].(float64)
	return v
}

func optString(group map[string]any, key string) string {
	return stringOr(group, key, notSpecified)
}

func stringOr(group map[string]any, key, def string) string {
	if v, ok := group[key].(string); ok && v != "" {
		return v
	}
	return def
}

func anyOr(group map[string]any, key string, def string) string {
	v, ok := group[key]
	if !ok || v == nil {
		return def
	}
	if f, ok := v.(float64); ok {
		return plain(f)
	}
	return fmt.Sprintf("%v", v)
}

// yesNo renders a tri-state boolean: absent is different from false
func yesNo(group map[string]any, key string) string {
	v, ok := group[key]
	if !ok || v == nil {
		return notSpecified
	}
	if b, ok := v.(bool); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	return notSpecified
}

//
// ==== number rendering ====
//

// amount renders a monetary value with thousands separators
func amount(v float64) string {
	return humanize.Commaf(v)
}

// money2 renders a monetary value with separators and exactly two decimals
func money2(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// plain renders a number without grouping, trimming float noise (7 not 7.0)
func plain(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
}
