package engine

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/vmatch/internal/value"
)

// diffThreshold is the byte length past which a STRING EQUALS mismatch
// gets a unified diff line ahead of its literal actual/expected values
// (spec.md §4.4.4), so long JSON-embedded string payloads stay legible.
const diffThreshold = 120

// BuildResult turns a completed top-level Operation into the Result
// spec.md §4.4.4 describes: pass-through on success, a rendered summary
// plus the structured failure list on failure.
func BuildResult(topType MatchType, pass bool, root *Root) Result {
	if pass {
		return Result{Pass: true}
	}
	return Result{
		Pass:     false,
		Message:  summarize(topType, root.Failures),
		Failures: append([]Failure(nil), root.Failures...),
	}
}

// summarize renders the header plus one block per unique, non-noise path,
// in reverse insertion order (leaf-most failure first) per spec.md
// §4.4.4/§9 ("Ordering guarantees").
func summarize(topType MatchType, failures []Failure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "match failed: %s", topType)

	seen := make(map[string]bool, len(failures))
	for i := len(failures) - 1; i >= 0; i-- {
		f := failures[i]
		if isXMLTextNoise(f.Path) || seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		b.WriteByte('\n')
		writeFailureBlock(&b, f)
	}
	return b.String()
}

// isXMLTextNoise reports whether path points at the synthetic "_" text
// key an XML-to-MAP conversion introduces — never worth surfacing on its
// own (spec.md §4.4.4).
func isXMLTextNoise(path string) bool {
	return strings.HasSuffix(path, "/_") || strings.HasSuffix(path, ".\"_\"")
}

func writeFailureBlock(b *strings.Builder, f Failure) {
	indent := strings.Repeat(" ", f.Depth*2)
	fmt.Fprintf(b, "%s%s: %s", indent, f.Path, f.Reason)

	expected := f.ExpectedValue.SortedLike(f.ActualValue)

	if f.Reason == "strings are not equal" && f.ActualKind == value.String && f.ExpectedKind == value.String {
		a, e := f.ActualValue.Str(), expected.Str()
		if len(a) > diffThreshold || len(e) > diffThreshold {
			b.WriteByte('\n')
			b.WriteString(indentLines(unifiedStringDiff(e, a), indent+"  "))
		}
	}

	fmt.Fprintf(b, "\n%s  actual:   %s", indent, f.ActualValue.PlainString())
	fmt.Fprintf(b, "\n%s  expected: %s", indent, expected.PlainString())
}

func unifiedStringDiff(expected, actual string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return strings.TrimRight(text, "\n")
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}
