package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiDocument []byte

// RequestValidationError reports a request that does not match the API document.
type RequestValidationError struct {
	Cause error
}

func (e *RequestValidationError) Error() string {
	return fmt.Sprintf("request does not match the API schema: %v", e.Cause)
}

func (e *RequestValidationError) Unwrap() error {
	return e.Cause
}

// OpenAPIDocument returns the embedded API description.
func OpenAPIDocument() []byte {
	return openapiDocument
}

type requestValidator struct {
	router  routers.Router
	options *openapi3filter.Options
}

func loadOpenAPIDocument(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

func newRequestValidator(doc *openapi3.T) (*requestValidator, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return &requestValidator{
		router: router,
		options: &openapi3filter.Options{
			// sessions are checked by the guard middleware
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}, nil
}

// middleware validates parameters and bodies of documented routes. Routes the document
// does not describe pass through untouched.
func (v *requestValidator) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route, pathParams, err := v.router.FindRoute(req)
		if err != nil {
			if errors.Is(err, routers.ErrMethodNotAllowed) {
				return echo.ErrMethodNotAllowed
			}
			return next(c)
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    v.options,
		}
		if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
			return &RequestValidationError{Cause: err}
		}
		return next(c)
	}
}

func serveOpenAPIDocument(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openapiDocument)
}
