// Package docs builds an OpenAPI 3.0 document from the same declarative
// route table the router registers handlers from, so the served
// documentation cannot drift from runtime behavior.
package docs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// Route describes one method+path binding: what it accepts, what it can
// answer, and how it is presented in the generated documentation.
type Route struct {
	Method        string
	Path          string // fiber style, e.g. /products/:id
	Summary       string
	OperationID   string
	Tags          []string
	RequestSchema string // component schema name; empty means no request body
	Responses     map[int]Response
}

// Response describes one documented outcome of a route.
type Response struct {
	Description string
	Schema      string // component schema name; empty means no body documented
	Array       bool
}

// Info holds the top-level metadata of the generated document.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Document is an OpenAPI 3.0 description of the API.
type Document struct {
	OpenAPI    string               `json:"openapi" yaml:"openapi"`
	Info       Info                 `json:"info" yaml:"info"`
	Servers    []Server             `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths" yaml:"paths"`
	Components *Components          `json:"components,omitempty" yaml:"components,omitempty"`
}

// Server names a base URL the documented paths are relative to.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem groups the operations bound to a single path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Patch  *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string                     `json:"summary,omitempty" yaml:"summary,omitempty"`
	OperationID string                     `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string                   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []*Parameter               `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody               `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*ResponseObject `json:"responses" yaml:"responses"`
}

// Parameter describes a path parameter of an operation.
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required" yaml:"required"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody describes the expected body of a mutating operation.
type RequestBody struct {
	Required bool                  `json:"required" yaml:"required"`
	Content  map[string]*MediaType `json:"content" yaml:"content"`
}

// MediaType carries the schema for one content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ResponseObject describes one documented response of an operation.
type ResponseObject struct {
	Description string                `json:"description" yaml:"description"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Schema is a JSON Schema subset sufficient for this API.
type Schema struct {
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format     string             `json:"format,omitempty" yaml:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Minimum    *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	MaxLength  *int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	ReadOnly   bool               `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Example    interface{}        `json:"example,omitempty" yaml:"example,omitempty"`
}

// Components holds the reusable schema definitions.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Float64 returns a pointer to v, for schema bounds.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for schema bounds.
func Int(v int) *int { return &v }

// SchemaRef returns a reference to a named component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// NewDocument assembles an OpenAPI document from route descriptors and
// named component schemas.
func NewDocument(info Info, routes []Route, schemas map[string]*Schema) *Document {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    info,
		Paths:   make(map[string]*PathItem),
	}
	if len(schemas) > 0 {
		doc.Components = &Components{Schemas: schemas}
	}

	for _, rt := range routes {
		path, params := convertPath(rt.Path)
		item, ok := doc.Paths[path]
		if !ok {
			item = &PathItem{}
			doc.Paths[path] = item
		}
		item.set(rt.Method, buildOperation(rt, params))
	}

	return doc
}

// convertPath rewrites fiber-style ":id" segments into OpenAPI "{id}"
// segments and returns the parameter names encountered.
func convertPath(path string) (string, []string) {
	segments := strings.Split(path, "/")
	var params []string
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			name := strings.TrimPrefix(seg, ":")
			segments[i] = "{" + name + "}"
			params = append(params, name)
		}
	}
	return strings.Join(segments, "/"), params
}

func buildOperation(rt Route, params []string) *Operation {
	op := &Operation{
		Summary:     rt.Summary,
		OperationID: rt.OperationID,
		Tags:        rt.Tags,
		Responses:   make(map[string]*ResponseObject),
	}

	for _, name := range params {
		// Path parameters in this API are numeric record IDs.
		op.Parameters = append(op.Parameters, &Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   &Schema{Type: "integer", Format: "int64"},
		})
	}

	if rt.RequestSchema != "" {
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]*MediaType{
				fiber.MIMEApplicationJSON: {Schema: SchemaRef(rt.RequestSchema)},
			},
		}
	}

	for status, resp := range rt.Responses {
		obj := &ResponseObject{Description: resp.Description}
		if resp.Schema != "" {
			schema := SchemaRef(resp.Schema)
			if resp.Array {
				schema = &Schema{Type: "array", Items: schema}
			}
			obj.Content = map[string]*MediaType{
				fiber.MIMEApplicationJSON: {Schema: schema},
			}
		}
		op.Responses[strconv.Itoa(status)] = obj
	}

	return op
}

func (p *PathItem) set(method string, op *Operation) {
	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		p.Get = op
	case fiber.MethodPost:
		p.Post = op
	case fiber.MethodPut:
		p.Put = op
	case fiber.MethodPatch:
		p.Patch = op
	case fiber.MethodDelete:
		p.Delete = op
	}
}

// ServeJSON returns a handler serving the document as JSON.
func (d *Document) ServeJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(d)
	}
}

// ServeYAML returns a handler serving the document as YAML.
func (d *Document) ServeYAML() fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := yaml.Marshal(d)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not render API documentation",
				"error":   fmt.Sprintf("%v", err),
			})
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(out)
	}
}
