package calculations

// RecordID identifier type
type RecordID string

// InputFields lists the financial inputs a calculation submission carries,
// in storage order. The record is written as an opaque item; nothing in
// this service reads it back.
var InputFields = []string{
	"propertyPrice",
	"deposit",
	"initialRentalIncome",
	"annualRentIncrease",
	"vacancyMonths",
	"monthlyRates",
	"monthlyLevies",
	"monthlyInsurance",
	"maintenancePercent",
	"commissionPercent",
	"cleaningPercent",
	"monthlyWaterElec",
	"monthlyWifi",
	"monthlySecurity",
	"annualExpenseIncrease",
	"loanTerm",
	"interestRate",
}

// Record is one stored calculation: the submitted inputs plus a generated
// id and creation timestamp (string-formatted wall clock, matching what the
// calculator frontend displays).
type Record struct {
	ID        RecordID       `json:"id"`
	CreatedAt string         `json:"createdAt"`
	Inputs    map[string]any `json:"inputs"`
}
