package oifits

import (
	"fmt"
	"strings"
)

// Severity ranks rule violations
type Severity int

const (
	// SeverityInfo is informational
	SeverityInfo Severity = iota
	// SeverityWarning flags suspicious but usable content
	SeverityWarning
	// SeveritySevere flags content which does not conform to the data model
	SeveritySevere
)

// String returns the upper case name of this Severity
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	default:
		return "SEVERE"
	}
}

// ParseSeverity returns the Severity matching its name, case insensitive
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(s) {
	case "INFO":
		return SeverityInfo, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "SEVERE":
		return SeveritySevere, nil
	}
	return SeverityInfo, fmt.Errorf("Unknown severity %q", s)
}

// Rule identifies a structural or semantic constraint of the data model
type Rule struct {
	ID          string
	Description string
	Severity    Severity
}

// String returns the identifier of this Rule
func (r Rule) String() string {
	return r.ID
}

var (
	// RuleKeywordMandatory checks if the required keyword is present
	RuleKeywordMandatory = Rule{"GENERIC_KEYWORD_MANDATORY", "check if the required keyword is present", SeveritySevere}
	// RuleKeywordFormat checks if the keyword value has the declared type
	RuleKeywordFormat = Rule{"GENERIC_KEYWORD_FORMAT", "check if the keyword value has the declared type", SeveritySevere}
	// RuleKeywordAccepted checks if the keyword value is one of the accepted values
	RuleKeywordAccepted = Rule{"GENERIC_KEYWORD_VAL_ACCEPTED", "check if the keyword value is accepted", SeveritySevere}
	// RuleColumnMandatory checks if the required column is present
	RuleColumnMandatory = Rule{"GENERIC_COL_MANDATORY", "check if the required column is present", SeveritySevere}
	// RuleColumnFormat checks if the column storage has the declared type and dimensionality
	RuleColumnFormat = Rule{"GENERIC_COL_FORMAT", "check if the column has the declared format", SeveritySevere}
	// RuleColumnRows checks if the column holds NAXIS2 rows
	RuleColumnRows = Rule{"GENERIC_COL_NBROWS", "check if the column length matches NAXIS2", SeveritySevere}
	// RuleColumnDim checks if every row of the column has the declared repeat count
	RuleColumnDim = Rule{"GENERIC_COL_DIM", "check if the column row dimensions match the repeat count", SeveritySevere}
	// RuleColumnAccepted checks if the column values are accepted
	RuleColumnAccepted = Rule{"GENERIC_COL_VAL_ACCEPTED", "check if the column values are accepted", SeveritySevere}
	// RuleColumnFinite checks if floating values are neither NaN nor infinite where required
	RuleColumnFinite = Rule{"GENERIC_COL_VAL_FINITE", "check if the column values are finite", SeverityWarning}
	// RuleDataArrayRef checks if the ARRNAME keyword refers to an existing OI_ARRAY table
	RuleDataArrayRef = Rule{"OI_DATA_ARRNAME_REF", "check if an OI_ARRAY table matches the ARRNAME keyword", SeveritySevere}
	// RuleDataWavelengthRef checks if the INSNAME keyword refers to an existing OI_WAVELENGTH table
	RuleDataWavelengthRef = Rule{"OI_DATA_INSNAME_REF", "check if an OI_WAVELENGTH table matches the INSNAME keyword", SeveritySevere}
	// RuleArrayNameUnique checks if ARRNAME values are unique among OI_ARRAY tables
	RuleArrayNameUnique = Rule{"OI_ARRAY_ARRNAME_UNIQ", "check if the ARRNAME keyword is unique", SeveritySevere}
	// RuleWavelengthNameUnique checks if INSNAME values are unique among OI_WAVELENGTH tables
	RuleWavelengthNameUnique = Rule{"OI_WAVELENGTH_INSNAME_UNIQ", "check if the INSNAME keyword is unique", SeveritySevere}
	// RuleTargetIDUnique checks if TARGET_ID values are unique in the OI_TARGET table
	RuleTargetIDUnique = Rule{"OI_TARGET_TARGETID_UNIQ", "check if TARGET_ID values are unique", SeveritySevere}
	// RuleTargetExists checks if the container holds exactly one OI_TARGET table
	RuleTargetExists = Rule{"OIFITS_TARGET_EXIST", "check if exactly one OI_TARGET table is present", SeveritySevere}
	// RuleDataExists checks if the container holds at least one data table
	RuleDataExists = Rule{"OIFITS_DATA_EXIST", "check if at least one data table is present", SeveritySevere}
)

// Rules returns every rule known to the validator
func Rules() []Rule {
	return []Rule{
		RuleKeywordMandatory, RuleKeywordFormat, RuleKeywordAccepted,
		RuleColumnMandatory, RuleColumnFormat, RuleColumnRows, RuleColumnDim, RuleColumnAccepted, RuleColumnFinite,
		RuleDataArrayRef, RuleDataWavelengthRef,
		RuleArrayNameUnique, RuleWavelengthNameUnique, RuleTargetIDUnique,
		RuleTargetExists, RuleDataExists,
	}
}

// Violation is one failed rule, attributed to a table member
type Violation struct {
	Rule      Rule
	Severity  Severity
	Extension string // table the violation was found in, "FILE" for container rules
	Member    string // keyword or column name, may be empty
	Message   string
}

// Error returns a textual representation of this Violation
func (v Violation) Error() string {
	if v.Member == "" {
		return fmt.Sprintf("%s [%s] %s: %s", v.Severity, v.Rule.ID, v.Extension, v.Message)
	}
	return fmt.Sprintf("%s [%s] %s.%s: %s", v.Severity, v.Rule.ID, v.Extension, v.Member, v.Message)
}
