// Package runid generates per-run identifiers for tagging a scheduler
// run's log output, using github.com/rs/xid as this lineage already does
// for per-connection identifiers.
package runid

import "github.com/rs/xid"

// New returns a new globally unique, sortable run identifier.
func New() string {
	return xid.New().String()
}
