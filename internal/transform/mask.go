package transform

import (
	"regexp"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// SensitiveKeywords flag a key as sensitive when the lowercased key contains one of them.
var SensitiveKeywords = []string{
	"phone", "mobile", "tel", "telephone",
	"email", "email_address", "mail",
	"id_card", "idcard", "identity", "id_number",
	"ssn", "social_security",
	"password", "pwd", "secret", "token", "api_key", "apikey",
	"credit_card", "card_number", "cvv",
	"bank_account", "account_number",
}

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex  = regexp.MustCompile(`^\d{11}$|^\+?\d{10,15}$`)
	idCardRegex = regexp.MustCompile(`^\d{15}$|^\d{18}$`)
)

// Masker hides personal data in string values.
type Masker struct {
	keywords []string
	matchers []func(key string) bool
}

// NewMasker returns a Masker using the built-in keywords plus extra ones.
// Each matcher may flag further keys as sensitive.
func NewMasker(extraKeywords []string, matchers ...func(key string) bool) *Masker {
	keywords := make([]string, 0, len(SensitiveKeywords)+len(extraKeywords))
	keywords = append(keywords, SensitiveKeywords...)
	for _, k := range extraKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Masker{keywords: keywords, matchers: matchers}
}

// IsSensitiveKey reports whether values under key should always be masked.
func (m *Masker) IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range m.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	for _, match := range m.matchers {
		if match(key) {
			return true
		}
	}
	return false
}

// Mask returns a copy of v with sensitive strings masked. A string under a
// sensitive key is always masked; any other string only when it looks like
// an email, phone number or ID card number. Non-string values are kept.
func (m *Masker) Mask(v models.JSONValue) models.JSONValue {
	switch t := v.(type) {
	case *models.JSONObject:
		out := models.NewObject(t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			if s, ok := val.(string); ok && m.IsSensitiveKey(k) {
				out.Set(k, MaskValue(s))
				continue
			}
			out.Set(k, m.Mask(val))
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, len(t))
		for i, item := range t {
			out[i] = m.Mask(item)
		}
		return out
	case string:
		if HasPIIShape(t) {
			return MaskValue(t)
		}
		return t
	default:
		return v
	}
}

// HasPIIShape reports whether s looks like an email, phone number or ID card number.
func HasPIIShape(s string) bool {
	return emailRegex.MatchString(s) || phoneRegex.MatchString(s) || idCardRegex.MatchString(s)
}

// MaskValue masks s according to its shape.
func MaskValue(s string) string {
	switch {
	case s == "":
		return s
	case emailRegex.MatchString(s):
		return maskEmail(s)
	case phoneRegex.MatchString(s):
		return maskKeepEnds(s, 3, 4, "****", 7)
	case idCardRegex.MatchString(s):
		return maskKeepEnds(s, 4, 4, "********", 8)
	default:
		return maskGeneric(s)
	}
}

// maskEmail keeps the domain and the first one or two characters of the local part.
func maskEmail(s string) string {
	at := strings.LastIndexByte(s, '@')
	local, domain := []rune(s[:at]), s[at+1:]
	keep := 2
	if len(local) <= 2 {
		keep = 1
	}
	return string(local[:keep]) + "***@" + domain
}

func maskKeepEnds(s string, head, tail int, fill string, minLen int) string {
	r := []rune(s)
	if len(r) < minLen {
		return "****"
	}
	return string(r[:head]) + fill + string(r[len(r)-tail:])
}

func maskGeneric(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return "****"
	}
	return string(r[:2]) + strings.Repeat("*", len(r)-4) + string(r[len(r)-2:])
}
