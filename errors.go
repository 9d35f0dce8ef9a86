package hsm

import "errors"

var (
	// Setup errors.
	ErrMaxDepth       = errors.New("hierarchy exceeds max depth")
	ErrNilHandler     = errors.New("state handler is nil")
	ErrDuplicateState = errors.New("duplicate state name")
	ErrForeignParent  = errors.New("parent belongs to another chart")
	ErrChartSealed    = errors.New("chart is sealed")
	ErrInvalidInitial = errors.New("invalid initial state")

	// Run-time errors.
	ErrNilState             = errors.New("nil target state")
	ErrForeignState         = errors.New("target state belongs to another chart")
	ErrRootTarget           = errors.New("root cannot be a transition target")
	ErrTransitionInProgress = errors.New("transition called from ENTRY or EXIT handler")
	ErrInitRecursion        = errors.New("INIT transition recursion limit reached")
	ErrPathOverflow         = errors.New("transition path exceeds scratch buffer")
	ErrReservedEvent        = errors.New("reserved event cannot be run")
)
