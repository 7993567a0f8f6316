package i18n

import (
	"sort"
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for validation error codes. Codes
// are JSON Schema keywords ("minimum", "required") or a keyword with a
// variant suffix ("oneOf/many"). data provides values for the {placeholders}
// of the message (for example "expected" or "property").
type Translator interface {
	Message(code string, data map[string]string) string
}

var messages = map[string]map[string]string{
	"en": {
		"type":                 "expected {expected}, got {actual}",
		"const":                "must be equal to {expected}",
		"enum":                 "must be one of {expected}",
		"multipleOf":           "{actual} is not a multiple of {expected}",
		"minimum":              "must be >= {expected}, got {actual}",
		"maximum":              "must be <= {expected}, got {actual}",
		"exclusiveMinimum":     "must be > {expected}, got {actual}",
		"exclusiveMaximum":     "must be < {expected}, got {actual}",
		"minLength":            "length must be >= {expected}, got {actual}",
		"maxLength":            "length must be <= {expected}, got {actual}",
		"pattern":              "does not match pattern {expected}",
		"pattern/invalid":      "cannot evaluate pattern {expected}: {reason}",
		"format":               "is not a valid {expected}: {reason}",
		"contentEncoding":      "is not valid {expected}: {reason}",
		"contentMediaType":     "is not valid {expected}: {reason}",
		"minItems":             "must have at least {expected} items, got {actual}",
		"maxItems":             "must have at most {expected} items, got {actual}",
		"uniqueItems":          "items at index {first} and {second} are equal",
		"additionalItems":      "additional items beyond index {expected} are not allowed",
		"contains":             "no item matches the contains schema",
		"minProperties":        "must have at least {expected} properties, got {actual}",
		"maxProperties":        "must have at most {expected} properties, got {actual}",
		"required":             "missing required property {property}",
		"additionalProperties": "additional property {property} is not allowed",
		"propertyNames":        "property name {property} is invalid",
		"patternProperties":    "cannot evaluate property pattern {expected}: {reason}",
		"dependencies":         "property {property} is required when {trigger} is present",
		"dependencies/schema":  "does not satisfy the dependency schema of {trigger}",
		"anyOf":                "does not match any schema in anyOf",
		"oneOf":                "does not match any schema in oneOf",
		"oneOf/many":           "matches {count} schemas in oneOf, expected exactly one",
		"not":                  "must not match the schema in not",
		"then":                 "matches if but fails then",
		"else":                 "fails if and fails else",
		"false":                "no value is allowed here",
		"depth":                "maximum validation depth {expected} exceeded",
		"duplicate_key":        "duplicate key",
		"max_depth":            "maximum nesting depth exceeded",
		"max_bytes":            "input too large",
		"parse_error":          "parse error",
	},
	"ja": {
		"type":                 "{expected} が必要ですが {actual} です",
		"const":                "{expected} と等しくなければなりません",
		"enum":                 "{expected} のいずれかでなければなりません",
		"multipleOf":           "{actual} は {expected} の倍数ではありません",
		"minimum":              "{expected} 以上でなければなりません (値: {actual})",
		"maximum":              "{expected} 以下でなければなりません (値: {actual})",
		"exclusiveMinimum":     "{expected} より大きくなければなりません (値: {actual})",
		"exclusiveMaximum":     "{expected} より小さくなければなりません (値: {actual})",
		"minLength":            "長さは {expected} 以上でなければなりません (長さ: {actual})",
		"maxLength":            "長さは {expected} 以下でなければなりません (長さ: {actual})",
		"pattern":              "パターン {expected} に一致しません",
		"pattern/invalid":      "パターン {expected} を評価できません: {reason}",
		"format":               "{expected} 形式ではありません: {reason}",
		"contentEncoding":      "{expected} として不正です: {reason}",
		"contentMediaType":     "{expected} として不正です: {reason}",
		"minItems":             "要素数は {expected} 以上でなければなりません (要素数: {actual})",
		"maxItems":             "要素数は {expected} 以下でなければなりません (要素数: {actual})",
		"uniqueItems":          "インデックス {first} と {second} の要素が重複しています",
		"additionalItems":      "インデックス {expected} 以降の要素は許可されていません",
		"contains":             "contains スキーマに一致する要素がありません",
		"minProperties":        "プロパティ数は {expected} 以上でなければなりません (プロパティ数: {actual})",
		"maxProperties":        "プロパティ数は {expected} 以下でなければなりません (プロパティ数: {actual})",
		"required":             "必須プロパティ {property} が不足しています",
		"additionalProperties": "プロパティ {property} は許可されていません",
		"propertyNames":        "プロパティ名 {property} が不正です",
		"patternProperties":    "プロパティパターン {expected} を評価できません: {reason}",
		"dependencies":         "{trigger} がある場合は {property} が必須です",
		"dependencies/schema":  "{trigger} の依存スキーマを満たしていません",
		"anyOf":                "anyOf のいずれのスキーマにも一致しません",
		"oneOf":                "oneOf のいずれのスキーマにも一致しません",
		"oneOf/many":           "oneOf の {count} 個のスキーマに一致しました (1 個である必要があります)",
		"not":                  "not のスキーマに一致してはいけません",
		"then":                 "if に一致しましたが then を満たしていません",
		"else":                 "if に一致せず else も満たしていません",
		"false":                "ここには値を置けません",
		"depth":                "検証の最大深さ {expected} を超えました",
		"duplicate_key":        "キーが重複しています",
		"max_depth":            "ネストが深すぎます",
		"max_bytes":            "入力が大きすぎます",
		"parse_error":          "解析エラー",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := messages[t.lang][code]
	if !ok {
		if tmpl, ok = messages["en"][code]; !ok {
			return code
		}
	}
	return Render(tmpl, data)
}

// Render substitutes {name} placeholders in tmpl with values from data.
// Placeholders without a value are left as is.
func Render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Languages lists the built-in dictionary languages.
func Languages() []string {
	out := make([]string, 0, len(messages))
	for l := range messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

type holder struct{ Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := messages[lang]; !ok {
		lang = "en"
	}
	current.Store(&holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr})
}

// ForLanguage returns the built-in Translator for lang without changing the
// process-wide one.
func ForLanguage(lang string) Translator {
	if _, ok := messages[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().Message(code, data) }
