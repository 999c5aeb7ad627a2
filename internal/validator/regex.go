package validator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/oxhq/vmatch/internal/value"
)

const regexPrefix = "regex "

// regexCache avoids recompiling the same pattern on every match; macro
// expressions commonly reuse the same validator name across many rows of
// the same fixture.
var (
	regexCacheMu sync.Mutex
	regexCache   = make(map[string]*regexp.Regexp)
)

// lookupRegex recognizes the `regex <pattern>` prefix rule (spec.md §4.3):
// trim the pattern, compile it (full-match, anchored both ends), and
// return a Func that requires the actual to be a string fully matching it.
// Any other name falls through with ok=false so Registry.Lookup proceeds
// to the table.
func lookupRegex(name string) (Func, bool) {
	if !strings.HasPrefix(name, regexPrefix) {
		return nil, false
	}
	pattern := strings.TrimSpace(strings.TrimPrefix(name, regexPrefix))

	re, err := compileRegex(pattern)
	if err != nil {
		return func(value.Value) bool { return false }, true
	}
	return func(v value.Value) bool {
		if v.Kind() != value.String {
			return false
		}
		return re.MatchString(v.Str())
	}, true
}

func compileRegex(pattern string) (*regexp.Regexp, error) {
	regexCacheMu.Lock()
	defer regexCacheMu.Unlock()
	if re, ok := regexCache[pattern]; ok {
		return re, nil
	}
	anchored := "^(?:" + pattern + ")$"
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, err
	}
	regexCache[pattern] = re
	return re, nil
}
