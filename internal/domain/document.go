package domain

import "strings"

const documentMinDigits = 11

// Document is an identity document number reduced to its digits. No
// checksum is verified, only a minimum digit count.
type Document struct {
	value string
}

func NewDocument(raw string) (Document, error) {
	if strings.TrimSpace(raw) == "" {
		return Document{}, NewValidationError("document is required")
	}

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	clean := digits.String()
	if len(clean) < documentMinDigits {
		return Document{}, NewValidationErrorf("document must have at least %d digits", documentMinDigits)
	}

	return Document{value: clean}, nil
}

func (d Document) String() string {
	return d.value
}

// Format renders the 123.456.789-00 shape. Documents longer than 11
// digits are returned as-is.
func (d Document) Format() string {
	if len(d.value) != 11 {
		return d.value
	}
	return d.value[:3] + "." + d.value[3:6] + "." + d.value[6:9] + "-" + d.value[9:]
}
