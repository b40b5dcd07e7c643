package visit

import "errors"

var (
	ErrVisitNotFound          = errors.New("visit not found")
	ErrVisitAlreadyCheckedOut = errors.New("visit has already been checked out")
	ErrOpenVisitExists        = errors.New("check out of your current visit first")
	ErrNotVisitOwner          = errors.New("only the employee who checked in can check out")
)
