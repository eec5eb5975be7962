package catalog

import "encoding/json"

// normalize converts a raw catalog response body into a listing slice.
//
// Accepted shapes:
//
//	[ {...}, {...} ]            bare array of listings
//	{ "lands": [ {...} ] }      sale catalog wrapped under its key
//	{ "rents": [ {...} ] }      rental catalog wrapped under its key
//
// Anything else (other keys, non-array values, invalid JSON) normalizes
// to an empty slice. Malformed responses are a server-side concern and
// must not surface as errors to the viewer.
func normalize(kind Kind, raw []byte) []Listing {
	var listings []Listing

	if err := json.Unmarshal(raw, &listings); err != nil {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return []Listing{}
		}
		inner, ok := wrapped[kind.wrapperKey()]
		if !ok {
			return []Listing{}
		}
		if err := json.Unmarshal(inner, &listings); err != nil {
			return []Listing{}
		}
	}

	if listings == nil {
		listings = []Listing{}
	}
	for i := range listings {
		listings[i].Kind = kind
	}
	return listings
}
