package price

// Oracle is the authoritative source of a fund's current NAV.
type Oracle interface {
	// GetCurrentNAV fails with a fund NotFoundError when the fund is unknown.
	GetCurrentNAV(fundID string) (float64, error)
	UpdateNAV(fundID string, nav float64) error
}
