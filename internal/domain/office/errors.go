package office

import "errors"

var (
	ErrOfficeNotFound   = errors.New("office not found")
	ErrOfficeNameExists = errors.New("office name already exists in this company")
	ErrOfficeInUse      = errors.New("office still has employees assigned")
)
