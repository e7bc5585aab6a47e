package routetable

import "errors"

var (
	ErrInvalidTable    = errors.New("routetable: invalid route table")
	ErrInvalidEntry    = errors.New("routetable: invalid exact entry")
	ErrInvalidRedirect = errors.New("routetable: invalid redirect")
	ErrInvalidTaxonomy = errors.New("routetable: invalid taxonomy")
	ErrWatcherStopped  = errors.New("routetable: watcher stopped")
)
