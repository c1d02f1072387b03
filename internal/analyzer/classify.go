package analyzer

import (
	"github.com/mcncl/swiftyper/internal/models"
)

// Classify maps a scalar JSON value to its inferred type and default
// literal. The value's tag decides, so true/false are never mistaken for
// 1/0. Arrays and objects are not scalars and report false.
func Classify(v models.JSONValue) (models.ValueType, bool) {
	switch v.Kind {
	case models.Bool:
		return models.BoolType, true
	case models.Number:
		if v.Number.IsIntegral() {
			return models.IntType, true
		}
		return models.DoubleType, true
	case models.String:
		return models.StringType, true
	case models.Null:
		return models.AnyType, true
	default:
		return models.ValueType{}, false
	}
}

// commonElementType folds the element types of a scalar array into one.
// Int widens to Double, nulls are skipped, and anything else that
// disagrees falls back to Any.
func commonElementType(types []models.ValueType) models.ValueType {
	var common *models.ValueType
	for i := range types {
		t := types[i]
		if t == models.AnyType {
			continue
		}
		switch {
		case common == nil:
			common = &t
		case *common == t:
		case isNumeric(*common) && isNumeric(t):
			widened := models.DoubleType
			common = &widened
		default:
			return models.AnyType
		}
	}
	if common == nil {
		return models.AnyType
	}
	return *common
}

func isNumeric(t models.ValueType) bool {
	return t == models.IntType || t == models.DoubleType
}
