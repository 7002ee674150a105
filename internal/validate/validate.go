package validate

import (
	"regexp"
	"strings"

	"electra/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Phone accepts common phone formats; empty is handled by callers that
// treat the field as optional.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePhone.MatchString(s)
}

// ID validates a simple resource identifier (order/product/staff ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func OrderStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case domain.StatusPending, domain.StatusDC, domain.StatusInvoice, domain.StatusDispatched:
		return s, true
	}
	return s, false
}

func PaymentCondition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case domain.PayImmediate, domain.PayDays15, domain.PayDays30:
		return s, true
	}
	return s, false
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, domain.ValidCategory(s)
}

func Role(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == domain.RoleAdmin || s == domain.RoleStaff
}

// Password enforces a length window for stored credentials. The upper
// bound keeps input inside bcrypt's 72-byte limit.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}
