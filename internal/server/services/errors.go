package services

import (
	"fmt"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/samber/oops"
)

// Codes attached to internal failures so logs can be filtered per operation.
const (
	CodeLoginFailed     = "AUTH_LOGIN_FAILED"
	CodeRegisterFailed  = "AUTH_REGISTER_FAILED"
	CodeDemoFailed      = "AUTH_DEMO_FAILED"
	CodeDemoResetFailed = "DEMO_RESET_FAILED"
)

// internalError wraps cause so that errors.Is(err, common.ErrorInternal)
// holds and the log line carries code, operation and the given identifiers.
func internalError(code, operation string, cause error, kv ...any) error {
	return oops.
		Code(code).
		With("operation", operation).
		With(kv...).
		Wrap(fmt.Errorf("%w: %w", common.ErrorInternal, cause))
}
