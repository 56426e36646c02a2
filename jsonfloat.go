package nccprob

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JsonFloat marshals NaN and the infinities, which encoding/json rejects,
// as strings.
type JsonFloat float64

func (f JsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(fmt.Sprint(v))
	}
	return json.Marshal(v)
}

func (f *JsonFloat) UnmarshalJSON(b []byte) error {
	var v float64
	if e := json.Unmarshal(b, &v); e == nil {
		*f = JsonFloat(v)
		return nil
	}
	var s string
	if e := json.Unmarshal(b, &s); e != nil {
		return e
	}
	v, e := strconv.ParseFloat(s, 64)
	if e != nil {
		return e
	}
	*f = JsonFloat(v)
	return nil
}
