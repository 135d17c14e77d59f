// Package attribution maps inbound visit parameters to a campaign source
// tag. Tags are recorded verbatim; display casing happens at aggregation.
package attribution

import "net/url"

const Direct = "direct"

// Source returns the campaign tag from the `s` query parameter, or
// "direct" when the visit carried none.
func Source(q url.Values) string {
	if s := q.Get("s"); s != "" {
		return s
	}
	return Direct
}
