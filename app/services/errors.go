// Package services holds the business rules between the HTTP controllers
// and the repositories. Each service takes the narrow store interface it
// needs, so tests run against in-memory fakes.
package services

import "errors"

// ErrUnknownUser is returned when a token is requested for an email with no
// stored identity. The gate maps it to a 403, not a 404: probing which
// emails exist should look the same as lacking access.
var ErrUnknownUser = errors.New("unknown user")
