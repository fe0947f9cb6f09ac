package ngxhttp

import "github.com/pavanmanishd/ngxscope"

// Dispatch runs r through the access handlers, then the location's content
// handler, and returns the status the host finalizes the request with.
//
// An access handler returning OK or Declined lets the request through; any
// other status, Again included, is returned as is. A location without a
// content handler yields 404.
func Dispatch(r *Request) ngxscope.Status {
	main := MainConf(r, Core)
	for i, h := range main.access {
		switch st := h(r); st {
		case ngxscope.OK, ngxscope.Declined:
		default:
			r.log.Debug("ngxhttp: access handler finished request", "handler", i, "status", st.String())
			return st
		}
	}

	loc := LocConf(r, Core)
	if loc.content == nil {
		return ngxscope.HTTPNotFound.Status()
	}
	return loc.content(r)
}
