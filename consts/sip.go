package consts

const (
	// SIP frequency
	FrequencyWeekly    = 1
	FrequencyMonthly   = 2
	FrequencyQuarterly = 3

	// SIP lifecycle states
	SipStateActive  = 1
	SipStatePaused  = 2
	SipStateStopped = 3

	// Payment status codes
	PaymentStatusPending = 1
	PaymentStatusSuccess = 2
	PaymentStatusFailure = 3

	// Transaction type
	TransactionTypeInstallment = 1
	TransactionTypeLumpSum     = 2

	// Fund category
	FundCategoryEquity = 1
	FundCategoryDebt   = 2
	FundCategoryHybrid = 3
	FundCategoryELSS   = 4

	// Fund risk level
	RiskLevelLow    = 1
	RiskLevelMedium = 2
	RiskLevelHigh   = 3
)

var frequencyNames = map[int]string{
	FrequencyWeekly:    "WEEKLY",
	FrequencyMonthly:   "MONTHLY",
	FrequencyQuarterly: "QUARTERLY",
}

var sipStateNames = map[int]string{
	SipStateActive:  "ACTIVE",
	SipStatePaused:  "PAUSED",
	SipStateStopped: "STOPPED",
}

var paymentStatusNames = map[int]string{
	PaymentStatusPending: "PENDING",
	PaymentStatusSuccess: "SUCCESS",
	PaymentStatusFailure: "FAILURE",
}

var transactionTypeNames = map[int]string{
	TransactionTypeInstallment: "INSTALLMENT",
	TransactionTypeLumpSum:     "LUMP_SUM",
}

var fundCategoryNames = map[int]string{
	FundCategoryEquity: "EQUITY",
	FundCategoryDebt:   "DEBT",
	FundCategoryHybrid: "HYBRID",
	FundCategoryELSS:   "ELSS",
}

var riskLevelNames = map[int]string{
	RiskLevelLow:    "LOW",
	RiskLevelMedium: "MEDIUM",
	RiskLevelHigh:   "HIGH",
}

func FrequencyName(v int) string       { return nameOf(frequencyNames, v) }
func SipStateName(v int) string        { return nameOf(sipStateNames, v) }
func PaymentStatusName(v int) string   { return nameOf(paymentStatusNames, v) }
func TransactionTypeName(v int) string { return nameOf(transactionTypeNames, v) }
func FundCategoryName(v int) string    { return nameOf(fundCategoryNames, v) }
func RiskLevelName(v int) string       { return nameOf(riskLevelNames, v) }

// ParseFrequency, ParseSipState etc. accept the upper-case names used in the API.
func ParseFrequency(s string) (int, bool)     { return codeOf(frequencyNames, s) }
func ParseSipState(s string) (int, bool)      { return codeOf(sipStateNames, s) }
func ParsePaymentStatus(s string) (int, bool) { return codeOf(paymentStatusNames, s) }
func ParseFundCategory(s string) (int, bool)  { return codeOf(fundCategoryNames, s) }
func ParseRiskLevel(s string) (int, bool)     { return codeOf(riskLevelNames, s) }

func nameOf(names map[int]string, v int) string {
	if name, ok := names[v]; ok {
		return name
	}
	return "UNKNOWN"
}

func codeOf(names map[int]string, s string) (int, bool) {
	for code, name := range names {
		if name == s {
			return code, true
		}
	}
	return 0, false
}
