package authorization

import (
	"context"
	"errors"
)

// Objects guarded by the enforcer.
const (
	ObjectOrder   = "order"
	ObjectReorder = "reorder"
	ObjectCCEmail = "cc_email"
	ObjectOffice  = "office"
	ObjectVendor  = "vendor"
	ObjectLookup  = "lookup"
	ObjectReport  = "report"
	ObjectUser    = "user"
)

const (
	ActionView     = "view"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionRegister = "register"
	ActionGenerate = "generate"
	ActionDownload = "download"
)

type Service interface {
	// Authorize checks whether the role may perform the action on the
	// object.
	Authorize(ctx context.Context, role, object, action string) error
}

var (
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)
