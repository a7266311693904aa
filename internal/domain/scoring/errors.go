package scoring

import "errors"

// ErrInvalidNumericFormat reports a gwp, circularity, cost or weight value
// that is not a finite number.
var ErrInvalidNumericFormat = errors.New("invalid numeric format")
