package apiclient

import (
	"net/url"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Params are query parameters. Nil values (including typed nil pointers) are dropped.
type Params map[string]interface{}

// Merge returns a new Params with the entries of others layered over p
func (p Params) Merge(others ...Params) Params {
	out := Params{}
	for k, v := range p {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Page is the skip/limit pair every list endpoint accepts
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage matches the page size the remote API assumes
var DefaultPage = Page{Skip: 0, Limit: 10}

// Params converts the page into query parameters
func (p Page) Params() Params {
	return Params{"skip": p.Skip, "limit": p.Limit}
}

// BuildQuery stringifies every present value. url.Values.Encode sorts keys.
func BuildQuery(params Params) url.Values {
	values := url.Values{}
	for key, v := range params {
		if lo.IsNil(v) {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		values.Set(key, s)
	}
	return values
}
