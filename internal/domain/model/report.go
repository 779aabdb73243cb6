package model

// RunReport summarizes the outcome of one monitoring pass. HasUpdates is the
// flag exported to the surrounding automation; it reflects bookkeeping only,
// never notification delivery.
type RunReport struct {
	RunID           string
	Checked         int
	Updated         int
	UpdatedAccounts []string
	HasUpdates      bool
}
