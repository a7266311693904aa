package api

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/ecoscore/internal/domain/model"
)

// requiredFields are checked in this order; the first absent key is reported.
var requiredFields = []string{
	"product_name",
	"materials",
	"weight_grams",
	"transport",
	"packaging",
	"gwp",
	"cost",
	"circularity",
}

// decodeProduct reads a POST /score body. Numeric fields are passed through
// as decoded so the scorer owns their coercion.
func decodeProduct(r io.Reader) (model.Product, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return model.Product{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if raw == nil {
		return model.Product{}, ErrInvalidBody
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return model.Product{}, fmt.Errorf("%w: trailing data after object", ErrInvalidBody)
	}

	for _, f := range requiredFields {
		if _, ok := raw[f]; !ok {
			return model.Product{}, &missingFieldError{field: f}
		}
	}

	return model.Product{
		Name:              text(raw["product_name"]),
		Materials:         textList(raw["materials"]),
		WeightGrams:       raw["weight_grams"],
		Transport:         text(raw["transport"]),
		Packaging:         text(raw["packaging"]),
		GWP:               raw["gwp"],
		Cost:              raw["cost"],
		Circularity:       raw["circularity"],
		WeightGWP:         raw["weight_gwp"],
		WeightCircularity: raw["weight_circularity"],
		WeightCost:        raw["weight_cost"],
	}, nil
}

// text renders a decoded JSON value as a string. Strings pass through and
// null becomes empty; anything else is rendered as its JSON text.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// textList renders materials. A bare value is treated as a one-item list.
func textList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, text(item))
		}
		return out
	default:
		return []string{text(t)}
	}
}
