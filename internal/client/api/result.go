package api

import "encoding/json"

// Result is the normalized outcome of a single API call. Every request
// produces exactly one Result; no call ever surfaces a raw transport error
// or panic to its caller.
//
// Invariants:
//   - exactly one of Data/Err is populated;
//   - Status 0 denotes a transport-level failure (timeout, DNS, refused
//     connection) or a 2xx response whose body was unusable, and always
//     implies Err is set;
//   - RetryAfter is non-zero only for rate-limited (429) responses.
type Result struct {
	Data       json.RawMessage
	Err        string
	Status     int
	RetryAfter int
}

// OK reports whether the call succeeded with a usable payload.
func (r *Result) OK() bool {
	return r.Err == ""
}

// Transient reports whether the failure is worth retrying: transport
// failures and temporarily-unavailable gateway statuses.
func (r *Result) Transient() bool {
	if r.OK() {
		return false
	}
	switch r.Status {
	case 0, 502, 503, 504:
		return true
	}
	return false
}

// Decode unmarshals the success payload into v.
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}
