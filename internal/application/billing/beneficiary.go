package billing

import (
	"strings"
)

// Beneficiary is a service recipient, who may differ from the paying customer.
type Beneficiary struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
}

// ParseBeneficiaries parses a bulk beneficiary listing, one beneficiary per
// line in the form "name" or "name, id number". Blank lines and lines with
// no name are dropped, so they never inflate the beneficiary count.
func ParseBeneficiaries(input string) []Beneficiary {
	var out []Beneficiary

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name := line
		idNumber := ""
		if idx := strings.Index(line, ","); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			idNumber = strings.TrimSpace(line[idx+1:])
		}

		if name == "" {
			continue
		}

		out = append(out, Beneficiary{Name: name, IDNumber: idNumber})
	}

	return out
}
