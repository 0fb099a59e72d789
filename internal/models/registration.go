package models

// Candidate is a synthetic credential pair eligible for registration.
type Candidate struct {
	Index    int
	Username string
	Password string
}

// Registration is the username plus the access token returned for it.
type Registration struct {
	Username string
	Token    string
}

// Failure records a candidate whose request faulted instead of being
// rejected by the server.
type Failure struct {
	Username string
	Err      error
}

// ResultSet is the ordered outcome of one run. Registrations are kept in
// insertion order, which is candidate index order.
type ResultSet struct {
	Registrations []Registration
	Failures      []Failure
	Attempted     int
	Rejected      int
}

func (r *ResultSet) Add(reg Registration) {
	r.Registrations = append(r.Registrations, reg)
}

func (r *ResultSet) Fail(username string, err error) {
	r.Failures = append(r.Failures, Failure{Username: username, Err: err})
}

func (r *ResultSet) Len() int {
	return len(r.Registrations)
}
