package identifier

// FormatCPF renders a CPF as 000.000.000-00. Input that does not
// canonicalize to eleven digits is returned unchanged.
func FormatCPF(raw string) string {
	d := Digits(raw)
	if len(d) != cpfLength {
		return raw
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatPhone renders (00) 00000-0000 for mobiles and (00) 0000-0000 for
// landlines. Any other length is returned unchanged.
func FormatPhone(raw string) string {
	d := Digits(raw)
	switch len(d) {
	case mobilePhoneLen:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:]
	case landlinePhoneLen:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return raw
	}
}

// FormatCEP renders a postal code as 00000-000.
func FormatCEP(raw string) string {
	d := Digits(raw)
	if len(d) != cepLength {
		return raw
	}
	return d[0:5] + "-" + d[5:]
}
