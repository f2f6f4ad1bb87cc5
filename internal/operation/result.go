// Package operation defines the tri-state outcome every domain operation
// returns instead of surfacing expected failures as errors.
package operation

type Status string

const (
	StatusSuccess      Status = "Success"
	StatusBadRequest   Status = "BadRequest"
	StatusInternalFail Status = "InternalFail"
)

// Result is the outcome of a domain operation that produces no value.
// BadRequest messages are safe to surface verbatim to the requester;
// InternalFail messages are always generic.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func Success() Result {
	return Result{Status: StatusSuccess}
}

func BadRequest(message string) Result {
	return Result{Status: StatusBadRequest, Message: message}
}

func InternalFail(message string) Result {
	return Result{Status: StatusInternalFail, Message: message}
}

// ValueResult is a Result carrying an operation value on success.
type ValueResult[T any] struct {
	Result
	Value T `json:"value,omitempty"`
}

func SuccessOf[T any](value T) ValueResult[T] {
	return ValueResult[T]{Result: Success(), Value: value}
}

func BadRequestOf[T any](message string) ValueResult[T] {
	return ValueResult[T]{Result: BadRequest(message)}
}

func InternalFailOf[T any](message string) ValueResult[T] {
	return ValueResult[T]{Result: InternalFail(message)}
}
