package i18n

import "fmt"

// Translator renders localized messages for error codes.
// data provides the message details (for example, "path", "key" or
// "expected"); missing entries render as empty strings.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	get := func(k string) string {
		if data == nil {
			return ""
		}
		return data[k]
	}
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			return fmt.Sprintf("型エラー: %s = %s は %s 型ですが、%s 型の値が必要です", get("path"), get("value"), get("actual"), get("expected"))
		case "missing_key":
			return fmt.Sprintf("キーエラー: %s['%s'] がありません", get("path"), get("key"))
		case "format_mismatch":
			return fmt.Sprintf("形式エラー: %s = %s はパターン %s に一致しません", get("path"), get("value"), get("pattern"))
		case "missing_one_of":
			return fmt.Sprintf("%s には次のキーのうちちょうど1つが必要ですが、1つも見つかりません: %s", get("path"), get("keys"))
		case "ambiguous_one_of":
			return fmt.Sprintf("%s には次のキーのうちちょうど1つが必要ですが、複数見つかりました: %s のうち %s", get("path"), get("keys"), get("present"))
		case "missing_at_least_one":
			return fmt.Sprintf("%s には次のキーのうち少なくとも1つが必要ですが、1つも見つかりません: %s", get("path"), get("keys"))
		case "depth_exceeded":
			return fmt.Sprintf("%s のネストが上限 %s 段を超えています", get("path"), get("max"))
		case "schema_definition":
			if p := get("path"); p != "" {
				return fmt.Sprintf("スキーマ定義エラー (%s): %s", p, get("detail"))
			}
			return fmt.Sprintf("スキーマ定義エラー: %s", get("detail"))
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			return fmt.Sprintf("type error: %s = %s, which is of type %s; a value of type %s is required", get("path"), get("value"), get("actual"), get("expected"))
		case "missing_key":
			return fmt.Sprintf("key error: missing key %s['%s']", get("path"), get("key"))
		case "format_mismatch":
			return fmt.Sprintf("format error: %s = %s does not match required pattern %s", get("path"), get("value"), get("pattern"))
		case "missing_one_of":
			return fmt.Sprintf("%s requires exactly one of these keys, but found none: %s", get("path"), get("keys"))
		case "ambiguous_one_of":
			return fmt.Sprintf("%s requires exactly one of these keys: %s, but found several: %s", get("path"), get("keys"), get("present"))
		case "missing_at_least_one":
			return fmt.Sprintf("%s requires at least one of these keys, but found none: %s", get("path"), get("keys"))
		case "depth_exceeded":
			return fmt.Sprintf("%s is nested deeper than the allowed %s levels", get("path"), get("max"))
		case "schema_definition":
			if p := get("path"); p != "" {
				return fmt.Sprintf("schema definition error at %s: %s", p, get("detail"))
			}
			return fmt.Sprintf("schema definition error: %s", get("detail"))
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T renders a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
