package httpapi

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validate is the global struct validator, grounded in Vpanel's
// validation middleware.
var validate = validator.New()

// bindEncodedQuery re-parses an encoded query string (as produced by
// profile.Load) into dst using gin's query binder, so a loaded profile
// is handled identically to a request's own query parameters.
func bindEncodedQuery(encoded string, dst interface{}) error {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return err
	}
	req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}
	return binding.Query.Bind(req, dst)
}
