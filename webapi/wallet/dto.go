package wallet

// CheckResponse is returned by the boolean actions.
type CheckResponse struct {
	OK bool `json:"ok"`
}
