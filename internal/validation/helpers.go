package validation

import (
	"regexp"
	"strconv"
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// isValidULID checks the 26 character Crockford base32 form.
func isValidULID(s string) bool {
	return validULID.MatchString(s)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
