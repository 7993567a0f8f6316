package jsonschema

import (
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single regular expression match. Backtracking
// patterns over hostile input fail with a timeout error instead of hanging.
var MatchTimeout = time.Second

// CompilePattern compiles an ECMA-262 regular expression as used by
// "pattern", "patternProperties" and the "regex" format. Matches are not
// anchored.
func CompilePattern(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

type regexCache struct {
	patternSrc string
	pattern    *regexp2.Regexp
	props      map[string]*regexp2.Regexp
}

// PatternRegexp returns the compiled "pattern" keyword, from the cache filled
// by Check when available.
func (s *Schema) PatternRegexp() (*regexp2.Regexp, error) {
	if c := s.regex; c != nil && c.pattern != nil && c.patternSrc == s.Pattern {
		return c.pattern, nil
	}
	return CompilePattern(s.Pattern)
}

// PatternPropertyRegexp returns the compiled form of one patternProperties key.
func (s *Schema) PatternPropertyRegexp(expr string) (*regexp2.Regexp, error) {
	if c := s.regex; c != nil {
		if re, ok := c.props[expr]; ok {
			return re, nil
		}
	}
	return CompilePattern(expr)
}

// compileRegexes compiles this node's own patterns into the cache and
// reports the ones that do not compile.
func (s *Schema) compileRegexes(path string, errs *SchemaErrors) {
	c := &regexCache{}
	if s.Pattern != "" {
		re, err := CompilePattern(s.Pattern)
		if err != nil {
			errs.add(path+"/pattern", "pattern", "invalid regular expression: %v", err)
		} else {
			c.patternSrc, c.pattern = s.Pattern, re
		}
	}
	for expr := range s.PatternProperties.All() {
		re, err := CompilePattern(expr)
		if err != nil {
			errs.add(pointer(path, "patternProperties", expr), "patternProperties", "invalid regular expression: %v", err)
			continue
		}
		if c.props == nil {
			c.props = make(map[string]*regexp2.Regexp)
		}
		c.props[expr] = re
	}
	s.regex = c
}
