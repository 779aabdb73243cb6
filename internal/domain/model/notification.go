package model

// AccountUpdate describes one account whose latest article changed during a
// run, together with the candidate that triggered the change.
type AccountUpdate struct {
	Identifier     string
	AccountName    string
	Article        CandidateArticle
	Classification Classification
}

// Notification is a transport-agnostic message for downstream notifiers.
type Notification struct {
	Subject string
	Body    string
	Updates []AccountUpdate
}
