// Package ferrors defines the layered error taxonomy from spec §7:
// representation errors raised by the delta store, query errors raised by
// the overlay engine, domain errors raised at the request/generator level,
// and infrastructure errors raised during apply. Each layer wraps the layer
// below with fmt.Errorf's %w, flat errors.New sentinels rather than a
// wrapping library.
package ferrors

import "errors"

// Representation errors (spec §7, raised by pkg/delta).
var (
	ErrAlreadyExists     = errors.New("representation: already exists")
	ErrDoesNotExist      = errors.New("representation: does not exist")
	ErrVirtualParentFile = errors.New("representation: virtual parent is a file")
	ErrIsNotADirectory   = errors.New("representation: is not a directory")
	ErrIsRelativePath    = errors.New("representation: is a relative path")
	ErrIsDotName         = errors.New("representation: is a dot name")
)

// Query errors (spec §7, raised by pkg/overlay).
var (
	ErrQueryIsNotADirectory    = errors.New("query: is not a directory")
	ErrReadTargetDoesNotExist  = errors.New("query: read target does not exist")
	ErrAddSubDanglingVirtual   = errors.New("query: add/sub dangling virtual path")
)

// Domain errors (spec §7, raised by pkg/operation at the request level).
var (
	ErrSourceDoesNotExist       = errors.New("domain: source does not exist")
	ErrCopyIntoItself           = errors.New("domain: cannot copy into itself")
	ErrMergeFileWithDirectory   = errors.New("domain: cannot merge file with directory")
	ErrOverwriteDirWithFile     = errors.New("domain: cannot overwrite directory with file")
	ErrDirectoryOverwriteNotAllowed = errors.New("domain: directory overwrite not allowed")
	ErrOverwriteNotAllowed      = errors.New("domain: overwrite not allowed")
	ErrCreateUnknown            = errors.New("domain: cannot create unknown kind")
	ErrDomainDoesNotExist       = errors.New("domain: does not exist")
	ErrUnknownKind              = errors.New("domain: endpoint has unknown kind")
	ErrStructural               = errors.New("domain: structural error (no file name at destination)")
)

// Infrastructure errors (spec §7, raised by pkg/writeadapter / pkg/apply).
var (
	ErrPathDoesNotExist       = errors.New("infrastructure: path does not exist")
	ErrParentDoesNotExist     = errors.New("infrastructure: parent does not exist")
	ErrParentIsNotADirectory  = errors.New("infrastructure: parent is not a directory")
	ErrInfraSourceDoesNotExist = errors.New("infrastructure: source does not exist")
	ErrSourceIsNotADirectory  = errors.New("infrastructure: source is not a directory")
	ErrSourceIsNotAFile       = errors.New("infrastructure: source is not a file")
	ErrDestinationIsNotAFile  = errors.New("infrastructure: destination is not a file")
	ErrDestinationAlreadyExists = errors.New("infrastructure: destination already exists")
	ErrDirectoryIsNotEmpty    = errors.New("infrastructure: directory is not empty")
)

// Tier identifies which of the four taxonomies an error belongs to, for the
// CLI's exit-code / stderr-kind reporting (spec §6 "error kind on stderr").
type Tier int

const (
	TierUnknown Tier = iota
	TierRepresentation
	TierQuery
	TierDomain
	TierInfrastructure
)

func (t Tier) String() string {
	switch t {
	case TierRepresentation:
		return "representation"
	case TierQuery:
		return "query"
	case TierDomain:
		return "domain"
	case TierInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

var representationSet = []error{
	ErrAlreadyExists, ErrDoesNotExist, ErrVirtualParentFile,
	ErrIsNotADirectory, ErrIsRelativePath, ErrIsDotName,
}

var querySet = []error{
	ErrQueryIsNotADirectory, ErrReadTargetDoesNotExist, ErrAddSubDanglingVirtual,
}

var domainSet = []error{
	ErrSourceDoesNotExist, ErrCopyIntoItself, ErrMergeFileWithDirectory,
	ErrOverwriteDirWithFile, ErrDirectoryOverwriteNotAllowed, ErrOverwriteNotAllowed,
	ErrCreateUnknown, ErrDomainDoesNotExist, ErrUnknownKind, ErrStructural,
}

var infrastructureSet = []error{
	ErrPathDoesNotExist, ErrParentDoesNotExist, ErrParentIsNotADirectory,
	ErrInfraSourceDoesNotExist, ErrSourceIsNotADirectory, ErrSourceIsNotAFile,
	ErrDestinationIsNotAFile, ErrDestinationAlreadyExists, ErrDirectoryIsNotEmpty,
}

// Classify walks err's wrap chain and reports which taxonomy tier it
// originates from: a pure sentinel -> classification mapping, the taxonomy
// tier standing in for a syscall.Errno. Tiers are tried in a fixed order
// (infrastructure, domain, query, representation), and the first tier with
// any sentinel anywhere in the chain wins.
func Classify(err error) Tier {
	if err == nil {
		return TierUnknown
	}
	if matchesAny(err, infrastructureSet) {
		return TierInfrastructure
	}
	if matchesAny(err, domainSet) {
		return TierDomain
	}
	if matchesAny(err, querySet) {
		return TierQuery
	}
	if matchesAny(err, representationSet) {
		return TierRepresentation
	}
	return TierUnknown
}

func matchesAny(err error, set []error) bool {
	for _, sentinel := range set {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Recoverable reports whether err is a guard-denied class that should drop
// the affected subtree rather than abort the whole request (spec §7
// policy). Guard denial is modeled as a distinct sentinel so generators can
// tell "no" from every other failure.
var ErrGuardDenied = errors.New("domain: guard denied")

func Recoverable(err error) bool {
	return errors.Is(err, ErrGuardDenied)
}
