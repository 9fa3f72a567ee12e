package errors

import (
	"errors"
	"net"
	"strings"
	"testing"
)

func TestNetworkErrorMessage(t *testing.T) {
	err := &NetworkError{Op: "dial", Addr: "127.0.0.1:6969", Err: errors.New("refused")}
	want := "dial 127.0.0.1:6969: refused"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	err.Retryable = true
	if !strings.Contains(err.Error(), "(retryable)") {
		t.Errorf("retryable errors should say so: %q", err.Error())
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap("accept", ":6969", inner)
	if !errors.Is(err, inner) {
		t.Error("Wrap should preserve the error chain")
	}
}

func TestWrapClassification(t *testing.T) {
	// Plain errors are not retryable.
	if Wrap("write", "a", errors.New("nope")).Retryable {
		t.Error("plain errors must not be classified retryable")
	}

	// Temporary DNS failures are.
	dnsErr := &net.DNSError{Err: "timeout", IsTemporary: true}
	if !Wrap("dial", "a", dnsErr).Retryable {
		t.Error("temporary DNS errors should be retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
	ne := &NetworkError{Op: "dial", Addr: "a", Err: errors.New("x"), Retryable: true}
	if !IsRetryable(ne) {
		t.Error("explicitly retryable NetworkError should report true")
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "port", Value: 70000, Message: "out of range 1-65535"}
	got := err.Error()
	if !strings.Contains(got, "--port=70000") || !strings.Contains(got, "out of range") {
		t.Errorf("unexpected message %q", got)
	}

	withHint := &ConfigError{Field: "ban-limit", Message: "must be positive", Hint: "e.g. --ban-limit 10m"}
	if !strings.Contains(withHint.Error(), "hint: e.g. --ban-limit 10m") {
		t.Errorf("hint missing from %q", withHint.Error())
	}
}
