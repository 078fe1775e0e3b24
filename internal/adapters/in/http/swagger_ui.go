package http

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// swaggerDoc feeds the embedded API document to the swag registry that echo-swagger reads.
type swaggerDoc struct {
	raw string
}

func (d swaggerDoc) ReadDoc() string {
	return d.raw
}

// swag panics on a second registration under the same name.
var registerSwaggerDoc sync.Once

// swaggerHandler serves Swagger UI under /swagger/ with doc.json rendered from doc.
func swaggerHandler(doc *openapi3.T) (echo.HandlerFunc, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	registerSwaggerDoc.Do(func() {
		swag.Register(swag.Name, swaggerDoc{raw: string(raw)})
	})
	return echoSwagger.WrapHandler, nil
}
