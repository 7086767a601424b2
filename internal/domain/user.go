package domain

import "github.com/google/uuid"

// User is an operator account allowed to trigger deliveries. Users are
// provisioned out of band; the service only ever reads them.
type User struct {
	ID       uuid.UUID
	Username string
	// PasswordHash is a PHC-encoded argon2id hash with embedded salt and
	// parameters, e.g. "$argon2id$v=19$m=65536,t=1,p=4$...$...".
	PasswordHash string
}
