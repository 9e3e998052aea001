package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"
	"time"
)

// statusCoder is implemented by errors that carry an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// errorCoder is implemented by errors that carry a provider error code.
type errorCoder interface {
	ErrorCode() string
}

// retryAter is implemented by errors that carry a rate limit reset hint.
type retryAter interface {
	RetryAt() time.Time
}

// Provider error codes of the remote key-value table.
var (
	authCodes = map[string]bool{
		"AccessDeniedException":       true,
		"UnrecognizedClientException": true,
	}
	throttleCodes = map[string]bool{
		"ProvisionedThroughputExceededException": true,
		"ThrottlingException":                    true,
		"RequestLimitExceeded":                   true,
	}
)

// Transport-level failure signatures found in error messages.
var networkSignatures = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"unexpected eof",
	": eof",
	"failed to fetch",
}

// Classify maps err to an ErrorType.
// Order: transport failure, HTTP status, provider code, UNKNOWN.
func Classify(err error) ErrorType {
	if err == nil {
		return ErrorUnknown
	}

	var se *SyncError
	if errors.As(err, &se) && se.Type != "" && se.Err == nil {
		return se.Type
	}

	if isNetworkError(err) {
		return ErrorNetwork
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		if t, ok := classifyStatus(sc.StatusCode()); ok {
			return t
		}
	}

	var ec errorCoder
	if errors.As(err, &ec) {
		code := ec.ErrorCode()
		switch {
		case authCodes[code]:
			return ErrorAuth
		case throttleCodes[code]:
			return ErrorRateLimit
		}
	}

	return ErrorUnknown
}

// classifyStatus maps an HTTP status code to an ErrorType.
// Codes below 400 are not classified.
func classifyStatus(status int) (ErrorType, bool) {
	switch {
	case status == 401 || status == 403:
		return ErrorAuth, true
	case status == 429:
		return ErrorRateLimit, true
	case status >= 500:
		return ErrorServer, true
	case status >= 400:
		return ErrorClient, true
	default:
		return "", false
	}
}

func isNetworkError(err error) bool {
	// Ошибки с HTTP статусом - это ответ сервера, а не сбой транспорта
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() > 0 {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range networkSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}

	return false
}

// RateLimitReset returns the provider-supplied reset time carried by err, if any.
func RateLimitReset(err error) (time.Time, bool) {
	var ra retryAter
	if errors.As(err, &ra) {
		at := ra.RetryAt()
		if !at.IsZero() {
			return at, true
		}
	}
	return time.Time{}, false
}
