package payeer

import "regexp"

var walletPattern = regexp.MustCompile(`^P\d{7,12}$`)

// ValidateWallet checks an account number such as P1000000.
func ValidateWallet(wallet string) error {
	if !walletPattern.MatchString(wallet) {
		return &ValidationError{
			Field:  "wallet",
			Reason: "must be P followed by 7 to 12 digits",
			Err:    ErrInvalidWallet,
		}
	}
	return nil
}
