package program

import "fmt"

// ErrorCode is a custom error code returned by the program.
type ErrorCode uint32

// Program error codes.
const (
	ErrPeriodTooShort                    ErrorCode = 6000
	ErrAlreadySubscribed                 ErrorCode = 6001
	ErrInsufficientPayment               ErrorCode = 6002
	ErrInvalidTokenAccount               ErrorCode = 6003
	ErrSubscriptionNotFound              ErrorCode = 6004
	ErrQualityOutOfRange                 ErrorCode = 6005
	ErrSubscriptionAlreadyEnded          ErrorCode = 6006
	ErrActiveSubscription                ErrorCode = 6007
	ErrNotOwner                          ErrorCode = 6008
	ErrTooManyRequests                   ErrorCode = 6009
	ErrNoSubscriptionRequest             ErrorCode = 6010
	ErrRequestNotApproved                ErrorCode = 6011
	ErrUnauthorized                      ErrorCode = 6012
	ErrInvalidDataProvider               ErrorCode = 6013
	ErrInvalidDataProviderFeeAccount     ErrorCode = 6014
	ErrInvalidOwnerFeeAccount            ErrorCode = 6015
	ErrInvalidDataProviderPaymentAccount ErrorCode = 6016
	ErrInvalidOwnerPaymentAccount        ErrorCode = 6017
	ErrTooManySubscriptions              ErrorCode = 6018
	ErrTooManySubscribers                ErrorCode = 6019
	ErrInvalidIndex                      ErrorCode = 6020
	ErrAlreadyApproved                   ErrorCode = 6021
	ErrInvalidSubscriber                 ErrorCode = 6022
)

// ErrorInfo is the program name and descriptive message of an error code.
type ErrorInfo struct {
	Name    string
	Message string
}

// UnknownErrorMessage is reported for codes missing from the table.
const UnknownErrorMessage = "unknown error"

// errorTable maps every code of the pinned program release. Add entries
// here when the program grows new errors.
var errorTable = map[ErrorCode]ErrorInfo{
	ErrPeriodTooShort:                    {"PeriodTooShort", "Subscription period is too short"},
	ErrAlreadySubscribed:                 {"AlreadySubscribed", "Already subscribed to this data provider"},
	ErrInsufficientPayment:               {"InsufficientPayment", "Insufficient payment"},
	ErrInvalidTokenAccount:               {"InvalidTokenAccount", "Invalid token account"},
	ErrSubscriptionNotFound:              {"SubscriptionNotFound", "Subscription not found"},
	ErrQualityOutOfRange:                 {"QualityOutOfRange", "Quality score must be between 0 and 100"},
	ErrSubscriptionAlreadyEnded:          {"SubscriptionAlreadyEnded", "Subscription has already ended"},
	ErrActiveSubscription:                {"ActiveSubscription", "Subscription is still active"},
	ErrNotOwner:                          {"NotOwner", "Not the contract owner"},
	ErrTooManyRequests:                   {"TooManyRequests", "Too many subscription requests"},
	ErrNoSubscriptionRequest:             {"NoSubscriptionRequest", "No subscription request found"},
	ErrRequestNotApproved:                {"RequestNotApproved", "Subscription request not approved"},
	ErrUnauthorized:                      {"Unauthorized", "Unauthorized"},
	ErrInvalidDataProvider:               {"InvalidDataProvider", "Invalid data provider"},
	ErrInvalidDataProviderFeeAccount:     {"InvalidDataProviderFeeAccount", "Invalid data provider fee account"},
	ErrInvalidOwnerFeeAccount:            {"InvalidOwnerFeeAccount", "Invalid owner fee account"},
	ErrInvalidDataProviderPaymentAccount: {"InvalidDataProviderPaymentAccount", "Invalid data provider payment account"},
	ErrInvalidOwnerPaymentAccount:        {"InvalidOwnerPaymentAccount", "Invalid owner payment account"},
	ErrTooManySubscriptions:              {"TooManySubscriptions", "Too many subscriptions"},
	ErrTooManySubscribers:                {"TooManySubscribers", "Too many subscribers"},
	ErrInvalidIndex:                      {"InvalidIndex", "Invalid request index"},
	ErrAlreadyApproved:                   {"AlreadyApproved", "Request already approved"},
	ErrInvalidSubscriber:                 {"InvalidSubscriber", "Invalid subscriber"},
}

// Info returns the table entry of c.
func (c ErrorCode) Info() (ErrorInfo, bool) {
	info, ok := errorTable[c]
	return info, ok
}

// ErrorCodes returns every known code in ascending order.
func ErrorCodes() []ErrorCode {
	out := make([]ErrorCode, 0, len(errorTable))
	for c := ErrPeriodTooShort; c <= ErrInvalidSubscriber; c++ {
		if _, ok := errorTable[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ProgramError is a coded failure reported by the program. Detail keeps the
// raw text of the failure as received from the node.
type ProgramError struct {
	Code    ErrorCode
	Name    string
	Message string
	Detail  string
}

// NewProgramError resolves code through the error table.
func NewProgramError(code uint32, detail string) *ProgramError {
	e := &ProgramError{Code: ErrorCode(code), Detail: detail, Message: UnknownErrorMessage}
	if info, ok := e.Code.Info(); ok {
		e.Name = info.Name
		e.Message = info.Message
	}
	return e
}

// Known reports whether the code is in the error table.
func (e *ProgramError) Known() bool {
	_, ok := e.Code.Info()
	return ok
}

func (e *ProgramError) Error() string {
	if !e.Known() {
		return fmt.Sprintf("%s (code %d): %s", UnknownErrorMessage, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s (%s, code %d)", e.Message, e.Name, e.Code)
}

// Is matches another *ProgramError with the same code, so callers can write
// errors.Is(err, &program.ProgramError{Code: program.ErrAlreadySubscribed}).
func (e *ProgramError) Is(target error) bool {
	t, ok := target.(*ProgramError)
	return ok && t.Code == e.Code
}
