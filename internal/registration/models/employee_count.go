package models

import "strings"

// EmployeeCountBracket is the canonical employee-count enumeration.
type EmployeeCountBracket string

const (
	EmployeeCount1To10      EmployeeCountBracket = "1-10"
	EmployeeCount11To50     EmployeeCountBracket = "11-50"
	EmployeeCount51To200    EmployeeCountBracket = "51-200"
	EmployeeCount201To500   EmployeeCountBracket = "201-500"
	EmployeeCount501To1000  EmployeeCountBracket = "501-1000"
	EmployeeCountOver1000   EmployeeCountBracket = "1000+"
)

// NormalizeEmployeeCount maps client-submitted employee counts onto the
// canonical brackets. Clients historically send either the display
// range ("11-50") or a symbolic token ("ELEVEN_TO_FIFTY"); both map to
// the same bracket.
//
// Unrecognized input deliberately falls back to the smallest bracket
// instead of erroring, which keeps legacy callers working at the cost
// of masking genuinely bad input.
func NormalizeEmployeeCount(input string) EmployeeCountBracket {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "1-10", "ONE_TO_TEN":
		return EmployeeCount1To10
	case "11-50", "ELEVEN_TO_FIFTY":
		return EmployeeCount11To50
	case "51-200", "FIFTY_ONE_TO_TWO_HUNDRED":
		return EmployeeCount51To200
	case "201-500", "TWO_HUNDRED_ONE_TO_FIVE_HUNDRED":
		return EmployeeCount201To500
	case "501-1000", "FIVE_HUNDRED_ONE_TO_THOUSAND":
		return EmployeeCount501To1000
	case "1000+", "OVER_THOUSAND":
		return EmployeeCountOver1000
	default:
		return EmployeeCount1To10
	}
}
