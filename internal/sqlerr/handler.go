package sqlerr

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the coarse category of a database error.
type Kind string

const (
	Connectivity   Kind = "connectivity"
	Authentication Kind = "authentication"
	MalformedQuery Kind = "malformed_query"
	Canceled       Kind = "canceled"
	Other          Kind = "other"
)

// Classify reports which Kind err belongs to. A nil error is Other.
//
// Rules, first match wins:
//   - context cancellation or deadline -> Canceled
//   - *pgconn.PgError by SQLSTATE class: 08 and 3D000 -> Connectivity,
//     28 -> Authentication, 42 -> MalformedQuery. Connect errors wrap
//     the server error, so a rejected password is still Authentication.
//   - *pgconn.ConnectError or net.Error -> Connectivity
func Classify(err error) Kind {
	if err == nil {
		return Other
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Canceled
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Connectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Connectivity
	}

	return Other
}

// MapCode maps a SQLSTATE code to a Kind.
func MapCode(code string) Kind {
	switch {
	case code == "3D000": // invalid_catalog_name: the database does not exist
		return Connectivity
	case strings.HasPrefix(code, "08"):
		return Connectivity
	case strings.HasPrefix(code, "28"):
		return Authentication
	case strings.HasPrefix(code, "42"):
		return MalformedQuery
	default:
		return Other
	}
}

// Code returns the SQLSTATE carried by err, or "" when err is not a
// server error.
func Code(err error) string {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return ""
}
