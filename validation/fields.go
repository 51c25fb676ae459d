package validation

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/aatuh/api-shield/identifier"
	"github.com/aatuh/api-shield/screen"
)

// CodeInvalid is the machine-readable code carried by every field error.
const CodeInvalid = "invalid"

// Reasons reported by the numeric and content validators. Identifier
// reasons come from package identifier.
const (
	ReasonNotNumeric = "not_numeric"
	ReasonNegative   = "negative"
	ReasonPrecision  = "precision"
	ReasonMalicious  = "malicious"
)

const maxPriceDecimals = 2

func invalid(reason, msg string) ValidationError {
	return ValidationError{Message: msg, Code: CodeInvalid, Reason: reason}
}

// ValidateCPF checks a CPF. Empty input is treated as not provided.
func ValidateCPF(value string) error {
	if value == "" {
		return nil
	}
	switch res := identifier.CheckCPF(value); res.Reason {
	case identifier.ReasonNone:
		return nil
	case identifier.ReasonWrongLength:
		return invalid(string(res.Reason), "CPF must contain 11 digits")
	default:
		return invalid(string(res.Reason), "invalid CPF")
	}
}

// ValidatePhone checks a Brazilian phone number. Empty input passes.
func ValidatePhone(value string) error {
	if value == "" {
		return nil
	}
	switch res := identifier.CheckPhone(value); res.Reason {
	case identifier.ReasonNone:
		return nil
	case identifier.ReasonMobilePrefix:
		return invalid(string(res.Reason), "mobile number must start with 9")
	default:
		return invalid(string(res.Reason), "phone number must have 10 or 11 digits")
	}
}

// ValidateCEP checks a postal code. Empty input passes.
func ValidateCEP(value string) error {
	if value == "" {
		return nil
	}
	if res := identifier.CheckCEP(value); !res.Valid() {
		return invalid(string(res.Reason), "CEP must contain 8 digits")
	}
	return nil
}

// ValidatePrice accepts any Go integer or floating point value, or a
// json.Number, that is not negative and has at most two decimal places.
// Strings, bools and everything else are rejected as not numeric.
func ValidatePrice(value any) error {
	if n, ok := value.(json.Number); ok {
		return validateNumberPrice(n)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return invalid(ReasonNegative, "value cannot be negative")
		}
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return nil
	case reflect.Float32, reflect.Float64:
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return validateFloatPrice(rv.Float(), bits)
	default:
		return invalid(ReasonNotNumeric, "value must be numeric")
	}
}

func validateNumberPrice(n json.Number) error {
	if i, err := n.Int64(); err == nil {
		return ValidatePrice(i)
	}
	f, err := n.Float64()
	if err != nil {
		return invalid(ReasonNotNumeric, "value must be numeric")
	}
	return validateFloatPrice(f, 64)
}

func validateFloatPrice(f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return invalid(ReasonNotNumeric, "value must be numeric")
	}
	if f < 0 {
		return invalid(ReasonNegative, "value cannot be negative")
	}
	// Shortest representation that round-trips, so 10.1 stays "10.1".
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > maxPriceDecimals {
		return invalid(ReasonPrecision, "value must have at most two decimal places")
	}
	return nil
}

var fieldSQLPatterns = compileAll(
	`(?i)\bSELECT\b.*\bFROM\b`,
	`(?i)\bUNION\b.*\bSELECT\b`,
	`(?i)\bINSERT\b.*\bINTO\b`,
	`(?i)\bUPDATE\b.*\bSET\b`,
	`(?i)\bDELETE\b.*\bFROM\b`,
	`(?i)\bDROP\b.*\bTABLE\b`,
	`--`,
	`/\*.*\*/`,
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

func matchAny(ps []*regexp.Regexp, s string) bool {
	for _, p := range ps {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ValidateNoSQLInjection rejects statement-shaped SQL fragments such as
// "SELECT ... FROM" and comment markers. It is stricter about shape than the
// request screener, so a lone keyword passes here.
func ValidateNoSQLInjection(value string) error {
	if matchAny(fieldSQLPatterns, value) {
		return invalid(ReasonMalicious, "invalid input detected")
	}
	return nil
}

// ValidateNoXSS rejects script and embedded-content markup using the same
// blocklist as the request screener.
func ValidateNoXSS(value string) error {
	if screen.MatchScript(value) {
		return invalid(ReasonMalicious, "invalid input detected")
	}
	return nil
}
