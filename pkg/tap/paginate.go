package tap

import (
	"fmt"
	"math"
	"strconv"
)

// NextPageField is the top-level response field carrying pagination state
const NextPageField = "next_page"

// Token is the pagination carry-over: extra query parameters merged into
// the next request. A nil token signals termination.
type Token map[string]string

// NextToken inspects a decoded response body for a next-page indicator and
// returns the token for the following request, or nil when pagination is
// exhausted. An object value is merged verbatim as query parameters; a
// scalar value is carried under the indicator's own name.
func NextToken(doc interface{}) Token {
	body, ok := doc.(map[string]interface{})
	if !ok {
		return nil
	}

	raw, ok := body[NextPageField]
	if !ok || raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			return nil
		}
		token := make(Token, len(v))
		for k, val := range v {
			token[k] = stringify(val)
		}
		return token
	case string:
		if v == "" {
			return nil
		}
		return Token{NextPageField: v}
	case float64:
		return Token{NextPageField: stringify(v)}
	default:
		return nil
	}
}

// stringify renders a decoded JSON scalar as a query parameter value.
// Whole numbers must not pick up a decimal point.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
