package format

import (
	"errors"
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
	"golang.org/x/net/idna"
)

// DateTime checks an RFC 3339 date-time ("2024-02-29T10:00:00.5+09:00").
// The "T" and "Z" separators are case-insensitive.
func DateTime(s string) error {
	u := strings.ToUpper(s)
	i := strings.IndexByte(u, 'T')
	if i < 0 {
		return errors.New("missing 'T' between date and time")
	}
	if err := Date(u[:i]); err != nil {
		return err
	}
	return Time(u[i+1:])
}

// Date checks an RFC 3339 full-date ("2024-02-29").
func Date(s string) error {
	if len(s) != len("2006-01-02") {
		return fmt.Errorf("%q is not a YYYY-MM-DD date", s)
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("%q is not a valid date", s)
	}
	return nil
}

// Time checks an RFC 3339 full-time with a mandatory offset ("10:00:00Z").
// A leap second (":60") is accepted when the time is 23:59:60 UTC.
func Time(s string) error {
	u := strings.ToUpper(s)
	if len(u) < len("15:04:05Z") || u[2] != ':' || u[5] != ':' {
		return fmt.Errorf("%q is not an HH:MM:SS time with offset", s)
	}
	leap := u[6:8] == "60"
	probe := u
	if leap {
		probe = u[:6] + "59" + u[8:]
	}
	t, err := time.Parse("15:04:05Z07:00", probe)
	if err != nil {
		return fmt.Errorf("%q is not a valid RFC 3339 time", s)
	}
	if leap {
		if utc := t.UTC(); utc.Hour() != 23 || utc.Minute() != 59 {
			return fmt.Errorf("%q: leap second outside 23:59 UTC", s)
		}
	}
	return nil
}

// Duration checks an ISO 8601 duration as profiled by RFC 3339 appendix A
// ("P1Y2M", "PT36H", "P4W").
func Duration(s string) error {
	bad := fmt.Errorf("%q is not an ISO 8601 duration", s)
	if !strings.HasPrefix(s, "P") || len(s) < 3 {
		return bad
	}
	date, tm, hasT := strings.Cut(s[1:], "T")
	if hasT && tm == "" {
		return bad
	}
	if strings.HasSuffix(date, "W") {
		if hasT || !allDigits(date[:len(date)-1]) {
			return bad
		}
		return nil
	}
	if !durationPart(date, "YMD") || !durationPart(tm, "HMS") {
		return bad
	}
	return nil
}

// durationPart checks a run of <digits><unit> pairs whose units appear in
// order and without gaps.
func durationPart(s, units string) bool {
	if s == "" {
		return true
	}
	first, last := -1, -1
	for s != "" {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 || i == len(s) {
			return false
		}
		u := strings.IndexByte(units, s[i])
		if u < 0 || u <= last {
			return false
		}
		if first < 0 {
			first = u
		} else if u != last+1 {
			return false
		}
		last = u
		s = s[i+1:]
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Email checks an RFC 5321 mailbox without display name.
func Email(s string) error {
	local, domain, err := splitMailbox(s)
	if err != nil {
		return err
	}
	for _, r := range local {
		if r >= utf8.RuneSelf {
			return fmt.Errorf("%q: non-ASCII local part", s)
		}
	}
	return mailDomain(domain, Hostname)
}

// IDNEmail is Email with internationalized local part and domain.
func IDNEmail(s string) error {
	_, domain, err := splitMailbox(s)
	if err != nil {
		return err
	}
	return mailDomain(domain, IDNHostname)
}

func splitMailbox(s string) (string, string, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return "", "", fmt.Errorf("%q is not a valid email address", s)
	}
	i := strings.LastIndexByte(s, '@')
	if i <= 0 || len(s[:i]) > 64 {
		return "", "", fmt.Errorf("%q is not a valid email address", s)
	}
	return s[:i], s[i+1:], nil
}

func mailDomain(domain string, host Func) error {
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		lit := domain[1 : len(domain)-1]
		if v6, ok := strings.CutPrefix(lit, "IPv6:"); ok {
			return IPv6(v6)
		}
		return IPv4(lit)
	}
	return host(domain)
}

// Hostname checks an RFC 1123 host name.
func Hostname(s string) error {
	if s == "" || len(s) > 253 {
		return fmt.Errorf("hostname length %d out of range", len(s))
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("%q: label length out of range", s)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("%q: label %q starts or ends with '-'", s, label)
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return fmt.Errorf("%q: invalid character %q", s, c)
			}
		}
	}
	return nil
}

var idnProfile = idna.New(idna.ValidateForRegistration(), idna.StrictDomainName(true))

// IDNHostname checks an internationalized host name (RFC 5890) by converting
// it to its A-label form.
func IDNHostname(s string) error {
	ascii, err := idnProfile.ToASCII(s)
	if err != nil {
		return fmt.Errorf("%q is not a valid IDN hostname: %v", s, err)
	}
	return Hostname(ascii)
}

// IPv4 checks a dotted-quad address without leading zeros.
func IPv4(s string) error {
	a, err := netip.ParseAddr(s)
	if err != nil || !a.Is4() {
		return fmt.Errorf("%q is not an IPv4 address", s)
	}
	return nil
}

// IPv6 checks an RFC 4291 address. Zones are not allowed.
func IPv6(s string) error {
	a, err := netip.ParseAddr(s)
	if err != nil || !a.Is6() || a.Zone() != "" {
		return fmt.Errorf("%q is not an IPv6 address", s)
	}
	return nil
}

// URI checks an absolute RFC 3986 URI.
func URI(s string) error {
	u, err := parseRef(s, false)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("%q is not an absolute URI", s)
	}
	return nil
}

// URIReference checks an RFC 3986 URI or relative reference.
func URIReference(s string) error {
	_, err := parseRef(s, false)
	return err
}

// IRI checks an absolute RFC 3987 IRI.
func IRI(s string) error {
	u, err := parseRef(s, true)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("%q is not an absolute IRI", s)
	}
	return nil
}

// IRIReference checks an RFC 3987 IRI or relative reference.
func IRIReference(s string) error {
	_, err := parseRef(s, true)
	return err
}

func parseRef(s string, unicode bool) (*url.URL, error) {
	for i, r := range s {
		if r >= utf8.RuneSelf {
			if !unicode {
				return nil, fmt.Errorf("%q: non-ASCII character at %d", s, i)
			}
			continue
		}
		if r <= ' ' || r == 0x7f || strings.ContainsRune(`<>"{}|\^`+"`", r) {
			return nil, fmt.Errorf("%q: character %q not allowed", s, r)
		}
		if r == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			return nil, fmt.Errorf("%q: malformed percent-encoding", s)
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%q: %v", s, err)
	}
	return u, nil
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// URITemplate checks RFC 6570 template syntax: balanced, non-nested
// expressions with valid operators, variable names and modifiers.
func URITemplate(s string) error {
	for len(s) > 0 {
		open := strings.IndexAny(s, "{}")
		if open < 0 {
			return nil
		}
		if s[open] == '}' {
			return errors.New("unbalanced '}' in URI template")
		}
		end := strings.IndexAny(s[open+1:], "{}")
		if end < 0 || s[open+1+end] == '{' {
			return errors.New("unterminated or nested expression in URI template")
		}
		if err := templateExpr(s[open+1 : open+1+end]); err != nil {
			return err
		}
		s = s[open+1+end+1:]
	}
	return nil
}

func templateExpr(e string) error {
	if e == "" {
		return errors.New("empty URI template expression")
	}
	if strings.ContainsRune("+#./;?&=,!@|", rune(e[0])) {
		e = e[1:]
	}
	for _, spec := range strings.Split(e, ",") {
		name := spec
		if n, ok := strings.CutSuffix(spec, "*"); ok {
			name = n
		} else if i := strings.IndexByte(spec, ':'); i >= 0 {
			name = spec[:i]
			n, err := strconv.Atoi(spec[i+1:])
			if err != nil || n <= 0 || n >= 10000 || spec[i+1] == '0' {
				return fmt.Errorf("invalid prefix modifier in %q", spec)
			}
		}
		if name == "" {
			return errors.New("empty variable name in URI template")
		}
		for i := 0; i < len(name); i++ {
			c := name[i]
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '.':
			case c == '%' && i+2 < len(name) && isHex(name[i+1]) && isHex(name[i+2]):
				i += 2
			default:
				return fmt.Errorf("invalid character %q in variable name %q", c, name)
			}
		}
	}
	return nil
}

// UUID checks the canonical 8-4-4-4-12 hexadecimal form.
func UUID(s string) error {
	if len(s) != 36 {
		return fmt.Errorf("%q is not a hyphenated UUID", s)
	}
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("%q is not a valid UUID: %v", s, err)
	}
	return nil
}

// JSONPointer checks an RFC 6901 JSON Pointer.
func JSONPointer(s string) error {
	if s == "" {
		return nil
	}
	if s[0] != '/' {
		return fmt.Errorf("%q does not start with '/'", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && (i+1 == len(s) || (s[i+1] != '0' && s[i+1] != '1')) {
			return fmt.Errorf("%q: '~' must be followed by 0 or 1", s)
		}
	}
	return nil
}

// RelativeJSONPointer checks a relative JSON Pointer ("0/foo", "1#").
func RelativeJSONPointer(s string) error {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || (s[0] == '0' && i > 1) {
		return fmt.Errorf("%q does not start with a non-negative integer", s)
	}
	if rest := s[i:]; rest != "#" {
		return JSONPointer(rest)
	}
	return nil
}

// Regex checks that s compiles as an ECMA-262 regular expression.
func Regex(s string) error {
	if _, err := regexp2.Compile(s, regexp2.ECMAScript); err != nil {
		return fmt.Errorf("invalid regular expression: %v", err)
	}
	return nil
}
