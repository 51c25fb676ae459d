// Package identifier canonicalizes and checks Brazilian identifiers: CPF
// taxpayer numbers, phone numbers and CEP postal codes.
//
// Every check strips non-digit characters first and then works on the
// canonical digit string, so "111.444.777-35" and "11144477735" are the
// same CPF.
package identifier

// Reason explains why an identifier was rejected. The zero value means the
// identifier is valid.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonWrongLength  Reason = "wrong_length"
	ReasonDegenerate   Reason = "degenerate"
	ReasonChecksum     Reason = "checksum_mismatch"
	ReasonMobilePrefix Reason = "mobile_prefix"
)

const (
	cpfLength         = 11
	cepLength         = 8
	landlinePhoneLen  = 10
	mobilePhoneLen    = 11
	mobilePrefixIndex = 2
)

// Result is the outcome of a single identifier check.
type Result struct {
	// Canonical is the input with every non-digit removed.
	Canonical string
	Reason    Reason
}

// Valid reports whether the check passed.
func (r Result) Valid() bool { return r.Reason == ReasonNone }

// Digits returns raw with every character outside '0'..'9' removed.
func Digits(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}

// CheckCPF validates the length, the repeated-digit rule and both check
// digits of a CPF.
func CheckCPF(raw string) Result {
	cpf := Digits(raw)
	res := Result{Canonical: cpf}
	if len(cpf) != cpfLength {
		res.Reason = ReasonWrongLength
		return res
	}
	if allSame(cpf) {
		res.Reason = ReasonDegenerate
		return res
	}
	for i := 9; i < cpfLength; i++ {
		if checkDigit(cpf, i) != int(cpf[i]-'0') {
			res.Reason = ReasonChecksum
			return res
		}
	}
	return res
}

// checkDigit computes the expected digit at position pos from the digits
// before it, weighting position n by pos+1-n.
func checkDigit(digits string, pos int) int {
	sum := 0
	for n := 0; n < pos; n++ {
		sum += int(digits[n]-'0') * (pos + 1 - n)
	}
	return ((sum * 10) % 11) % 10
}

// CheckPhone accepts 10-digit landlines and 11-digit mobiles. Mobiles must
// carry a 9 right after the two-digit area code.
func CheckPhone(raw string) Result {
	phone := Digits(raw)
	res := Result{Canonical: phone}
	switch len(phone) {
	case landlinePhoneLen:
	case mobilePhoneLen:
		if phone[mobilePrefixIndex] != '9' {
			res.Reason = ReasonMobilePrefix
		}
	default:
		res.Reason = ReasonWrongLength
	}
	return res
}

// CheckCEP requires exactly eight digits.
func CheckCEP(raw string) Result {
	cep := Digits(raw)
	res := Result{Canonical: cep}
	if len(cep) != cepLength {
		res.Reason = ReasonWrongLength
	}
	return res
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
