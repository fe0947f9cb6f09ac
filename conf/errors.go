package conf

import "errors"

var (
	// ErrLoad is returned when configuration load must abort, such as when
	// a node cannot be allocated. Load is never retried.
	ErrLoad = errors.New("conf: load failed")
	// ErrNoRegistry is returned by NewCycle when ctx carries no Registry.
	ErrNoRegistry = errors.New("conf: no registry in context")
	// ErrDuplicateModule is returned when two modules share a name.
	ErrDuplicateModule = errors.New("conf: duplicate module")
	// ErrUnknownDirective is returned for a directive no module declares.
	ErrUnknownDirective = errors.New("conf: unknown directive")
	// ErrNotAllowed is returned for a directive used outside its scopes.
	ErrNotAllowed = errors.New("conf: directive is not allowed here")
	// ErrArgs is returned for a directive with the wrong number of arguments.
	ErrArgs = errors.New("conf: invalid number of arguments")
	// ErrDuplicate is returned when a directive sets a field twice in one
	// scope.
	ErrDuplicate = errors.New("conf: directive is duplicate")
	// ErrInvalidValue is returned when an argument cannot be parsed.
	ErrInvalidValue = errors.New("conf: invalid value")
)
