package htmlutil

import (
	"fmt"
	"slices"
	"strings"
)

// Filter is a single `contains(@key, 'value')` predicate.
type Filter struct {
	Key   string
	Value string
}

// Attr creates a filter on the attribute `key`. Keys follow a small naming
// convention so that selector tables read the same as the markup:
//   - `class_` and `id_` mean `class` and `id`
//   - `__` is replaced with `-`, so `data__utc__ts` means `data-utc-ts`
func Attr(key, value string) Filter {
	return Filter{Key: attrName(key), Value: value}
}

// Class is shorthand for Attr("class_", value).
func Class(value string) Filter {
	return Attr("class_", value)
}

// ID is shorthand for Attr("id_", value).
func ID(value string) Filter {
	return Attr("id_", value)
}

func attrName(key string) string {
	switch key {
	case "class_":
		return "class"
	case "id_":
		return "id"
	}
	return strings.ReplaceAll(key, "__", "-")
}

func filterRank(f Filter) int {
	switch f.Key {
	case "class":
		return 0
	case "id":
		return 1
	}
	return 2
}

// literal quotes a string as an xpath 1.0 literal.
func literal(value string) string {
	if !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	if !strings.Contains(value, `"`) {
		return `"` + value + `"`
	}
	parts := strings.Split(value, "'")
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = "'" + p + "'"
	}
	return "concat(" + strings.Join(quoted, `, "'", `) + ")"
}

// Xpath selects every `element` anywhere in the document whose attributes
// contain the given filter values. Filters with an empty value are ignored,
// class and id filters are always emitted first.
//
//	Xpath("div", Class("wf-avatar")) == "//div[contains(@class, 'wf-avatar')]"
func Xpath(element string, filters ...Filter) string {
	return XpathFrom("", element, filters...)
}

// XpathFrom is Xpath scoped under `root`.
func XpathFrom(root, element string, filters ...Filter) string {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		active = append(active, f)
	}
	slices.SortStableFunc(active, func(a, b Filter) int {
		return filterRank(a) - filterRank(b)
	})

	if len(active) == 0 {
		return fmt.Sprintf("%s//%s", root, element)
	}

	predicates := make([]string, len(active))
	for i, f := range active {
		predicates[i] = fmt.Sprintf("contains(@%s, %s)", f.Key, literal(f.Value))
	}
	return fmt.Sprintf("%s//%s[%s]", root, element, strings.Join(predicates, " and "))
}

// Join combines xpath fragments into one descendant path, similar to
// filepath.Join. A leading `//` on any fragment is dropped before joining.
//
//	Join("//div[contains(@class, 'x')]", "img") == "//div[contains(@class, 'x')]//img"
func Join(fragments ...string) string {
	trimmed := make([]string, len(fragments))
	for i, f := range fragments {
		trimmed[i] = strings.TrimPrefix(f, "//")
	}
	return "//" + strings.Join(trimmed, "//")
}

// Nth selects the n-th (1-indexed) node matched by `path` across the whole
// document.
func Nth(path string, n int) string {
	return fmt.Sprintf("(%s)[%d]", path, n)
}

// JoinFrom is Join scoped under `root`, it is used when `root` is an
// expression that cannot itself be prefixed with `//` such as Nth.
func JoinFrom(root string, fragments ...string) string {
	return root + Join(fragments...)
}
