package verify

import (
	"userseed/internal/auth"
	"userseed/internal/models"
)

type Outcome struct {
	Username string
	Valid    bool
	Reason   string
}

// Tokens checks every registration's token signature and that its username
// claim matches the line it was written on.
func Tokens(jwt *auth.JWTManager, regs []models.Registration) ([]Outcome, int) {
	outcomes := make([]Outcome, 0, len(regs))
	invalid := 0
	for _, reg := range regs {
		o := Outcome{Username: reg.Username, Valid: true}
		claims, err := jwt.ValidateToken(reg.Token)
		switch {
		case err != nil:
			o.Valid, o.Reason = false, err.Error()
		case claims.Username != reg.Username:
			o.Valid, o.Reason = false, "username claim is "+claims.Username
		}
		if !o.Valid {
			invalid++
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, invalid
}
