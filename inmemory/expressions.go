package inmemory

import (
	"fmt"
	"strings"

	"github.com/predictlab/rankx"
)

// matchesFilters checks if a document matches all the filter expressions.
func matchesFilters(doc Document, filters []rankx.Expression) bool {
	for _, filter := range filters {
		if !evaluate(doc, filter) {
			return false
		}
	}
	return true
}

// evaluate evaluates a single expression against a document.
func evaluate(doc Document, expr rankx.Expression) bool {
	switch e := expr.(type) {
	case rankx.AndExpr:
		for _, inner := range e.Exprs {
			if !evaluate(doc, inner) {
				return false
			}
		}
		return true
	case rankx.OrExpr:
		for _, inner := range e.Exprs {
			if evaluate(doc, inner) {
				return true
			}
		}
		return false
	case rankx.NotExpr:
		return !evaluate(doc, e.Inner)
	case rankx.EqExpr:
		value, exists := fieldValue(doc, e.Field)
		if !exists {
			return e.Value == nil
		}
		return valuesEqual(value, e.Value)
	case rankx.NeExpr:
		value, exists := fieldValue(doc, e.Field)
		if !exists {
			return e.Value != nil
		}
		return !valuesEqual(value, e.Value)
	case rankx.GtExpr:
		return compareField(doc, e.Field, e.Value, func(cmp int) bool { return cmp > 0 })
	case rankx.GteExpr:
		return compareField(doc, e.Field, e.Value, func(cmp int) bool { return cmp >= 0 })
	case rankx.LtExpr:
		return compareField(doc, e.Field, e.Value, func(cmp int) bool { return cmp < 0 })
	case rankx.LteExpr:
		return compareField(doc, e.Field, e.Value, func(cmp int) bool { return cmp <= 0 })
	case rankx.RangeExpr:
		value, exists := fieldValue(doc, e.Field)
		if !exists {
			return false
		}
		if e.Min != nil && compareValues(value, e.Min) < 0 {
			return false
		}
		if e.Max != nil && compareValues(value, e.Max) > 0 {
			return false
		}
		return true
	case rankx.ExistsExpr:
		_, exists := fieldValue(doc, e.Field)
		return exists
	default:
		// Unknown expression type, don't filter the document out.
		return true
	}
}

// fieldValue resolves a filter field against a document. The reserved names
// _title and _notes address the classifier inputs; everything else reads
// from Fields.
func fieldValue(doc Document, field string) (interface{}, bool) {
	switch field {
	case "_title":
		return doc.Title, true
	case "_notes":
		if doc.Notes == "" {
			return nil, false
		}
		return doc.Notes, true
	}
	value, exists := doc.Fields[field]
	return value, exists
}

// compareField applies an ordered comparison of a document field against a
// value; missing fields never satisfy ordered comparisons.
func compareField(doc Document, field string, value interface{}, satisfied func(int) bool) bool {
	docValue, exists := fieldValue(doc, field)
	if !exists {
		return false
	}
	return satisfied(compareValues(docValue, value))
}

// valuesEqual checks if two values are equal, comparing numerically when
// both sides convert to a number.
func valuesEqual(v1, v2 interface{}) bool {
	if v1 == nil || v2 == nil {
		return v1 == v2
	}

	if f1, ok1 := toFloat64(v1); ok1 {
		if f2, ok2 := toFloat64(v2); ok2 {
			return f1 == f2
		}
	}

	return fmt.Sprintf("%v", v1) == fmt.Sprintf("%v", v2)
}

// compareValues orders two values: nils first, then numerically when
// possible, falling back to string comparison.
func compareValues(v1, v2 interface{}) int {
	if v1 == nil && v2 == nil {
		return 0
	}
	if v1 == nil {
		return -1
	}
	if v2 == nil {
		return 1
	}

	if f1, ok1 := toFloat64(v1); ok1 {
		if f2, ok2 := toFloat64(v2); ok2 {
			switch {
			case f1 < f2:
				return -1
			case f1 > f2:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(fmt.Sprintf("%v", v1), fmt.Sprintf("%v", v2))
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
