// Package openapi provides reflective OpenAPI 3.0 document generation for
// the courier site API.
package openapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// =============================================================================
// Generator
// =============================================================================

// Generator produces an OpenAPI 3.0 document by reflecting on registered
// JSON:API resources and plain JSON endpoints.
type Generator struct {
	title       string
	version     string
	description string
	servers     []string
	resources   []ResourceInfo
	endpoints   []EndpointInfo
	mu          sync.RWMutex
	cachedSpec  *openapi3.T
}

// ResourceInfo describes a JSON:API resource mounted under /api/v1.
type ResourceInfo struct {
	Name     string      // resource type name, e.g. "services"
	Singular string      // schema name stem, e.g. "Service"
	Model    interface{} // struct whose json tags define the attributes
}

// EndpointInfo describes a plain JSON endpoint outside the JSON:API mount.
type EndpointInfo struct {
	Method   string
	Path     string
	Summary  string
	Tag      string
	Request  interface{} // nil for endpoints without a body
	Response interface{}
	Statuses []int // documented error statuses besides 200
}

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithDescription sets the API description.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(g *Generator) {
		g.servers = append(g.servers, url)
	}
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		title:   "Courier Site API",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegisterResource adds a read-only JSON:API resource.
func (g *Generator) RegisterResource(info ResourceInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if info.Singular == "" {
		info.Singular = capitalize(info.Name)
	}
	g.resources = append(g.resources, info)
	g.cachedSpec = nil
}

// RegisterEndpoint adds a plain JSON endpoint.
func (g *Generator) RegisterEndpoint(info EndpointInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endpoints = append(g.endpoints, info)
	g.cachedSpec = nil
}

// Generate produces the complete document. The result is cached until the
// next registration.
func (g *Generator) Generate() *openapi3.T {
	g.mu.RLock()
	if g.cachedSpec != nil {
		spec := g.cachedSpec
		g.mu.RUnlock()
		return spec
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cachedSpec != nil {
		return g.cachedSpec
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       g.title,
			Version:     g.version,
			Description: g.description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}
	for _, url := range g.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	g.addCommonSchemas(spec)
	for _, res := range g.resources {
		g.addResource(spec, res)
	}
	for _, ep := range g.endpoints {
		g.addEndpoint(spec, ep)
	}

	g.cachedSpec = spec
	return spec
}

// Handler serves the document as JSON.
func (g *Generator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := g.Generate()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI document", http.StatusInternalServerError)
		}
	}
}

// =============================================================================
// Schema Generation
// =============================================================================

func (g *Generator) addCommonSchemas(spec *openapi3.T) {
	spec.Components.Schemas["PaginationMeta"] = objectSchema(openapi3.Schemas{
		"total":  typed("integer"),
		"limit":  typed("integer"),
		"offset": typed("integer"),
	})

	spec.Components.Schemas["Error"] = objectSchema(openapi3.Schemas{
		"errors": &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type: &openapi3.Types{"array"},
				Items: objectSchema(openapi3.Schemas{
					"status": typed("string"),
					"title":  typed("string"),
					"detail": typed("string"),
				}),
			},
		},
	})
}

func (g *Generator) addResource(spec *openapi3.T, res ResourceInfo) {
	basePath := "/api/v1/" + res.Name
	name := res.Singular

	spec.Components.Schemas[name+"Attributes"] = g.extractSchema(res.Model)
	spec.Components.Schemas[name] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"type": &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type: &openapi3.Types{"string"},
						Enum: []interface{}{res.Name},
					},
				},
				"id":         typed("string"),
				"attributes": ref(name + "Attributes"),
			},
			Required: []string{"type", "id"},
		},
	}
	spec.Components.Schemas[name+"Response"] = objectSchema(openapi3.Schemas{
		"data": ref(name),
	})
	spec.Components.Schemas[name+"ListResponse"] = objectSchema(openapi3.Schemas{
		"data": &openapi3.SchemaRef{
			Value: &openapi3.Schema{Type: &openapi3.Types{"array"}, Items: ref(name)},
		},
		"meta": ref("PaginationMeta"),
	})

	spec.Paths.Set(basePath, &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "list" + capitalize(res.Name),
			Summary:     "List " + res.Name,
			Tags:        []string{capitalize(res.Name)},
			Parameters: openapi3.Parameters{
				queryParam("page[size]"),
				queryParam("page[number]"),
				queryParam("page[offset]"),
			},
			Responses: responses(jsonAPIMediaType, ref(name+"ListResponse")),
		},
	})

	spec.Paths.Set(basePath+"/{id}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{
			&openapi3.ParameterRef{
				Value: &openapi3.Parameter{
					Name:     "id",
					In:       "path",
					Required: true,
					Schema:   typed("string"),
				},
			},
		},
		Get: &openapi3.Operation{
			OperationID: "get" + name,
			Summary:     "Get a " + strings.ToLower(name) + " by id or slug",
			Tags:        []string{capitalize(res.Name)},
			Responses:   responses(jsonAPIMediaType, ref(name+"Response"), http.StatusNotFound),
		},
	})
}

func (g *Generator) addEndpoint(spec *openapi3.T, ep EndpointInfo) {
	op := &openapi3.Operation{
		OperationID: operationID(ep.Method, ep.Path),
		Summary:     ep.Summary,
		Responses:   responses(jsonMediaType, g.extractSchema(ep.Response), ep.Statuses...),
	}
	if ep.Tag != "" {
		op.Tags = []string{ep.Tag}
	}
	if ep.Request != nil {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(g.extractSchema(ep.Request)),
		}
	}

	item := spec.Paths.Value(ep.Path)
	if item == nil {
		item = &openapi3.PathItem{}
		spec.Paths.Set(ep.Path, item)
	}
	item.SetOperation(ep.Method, op)
}

// extractSchema builds an object schema from a struct's exported fields and
// their json tags.
func (g *Generator) extractSchema(model interface{}) *openapi3.SchemaRef {
	if model == nil {
		return typed("object")
	}
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return g.goTypeToSchema(t)
	}

	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas),
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := field.Name
		if jsonTag != "" {
			if parts := strings.Split(jsonTag, ","); parts[0] != "" {
				name = parts[0]
			}
		}
		if prop := g.goTypeToSchema(field.Type); prop != nil {
			schema.Properties[name] = prop
		}
	}
	return &openapi3.SchemaRef{Value: schema}
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	durationType    = reflect.TypeOf(time.Duration(0))
	jsonMarshalType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

func (g *Generator) goTypeToSchema(t reflect.Type) *openapi3.SchemaRef {
	switch {
	case t == timeType:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}}
	case t == durationType:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}}
	case t.Kind() == reflect.Struct && t.Implements(jsonMarshalType):
		// Custom encodings (loosely typed scalars) are not introspected.
		return &openapi3.SchemaRef{Value: &openapi3.Schema{}}
	}

	switch t.Kind() {
	case reflect.String:
		return typed("string")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int32"}}
	case reflect.Int64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typed("integer")
	case reflect.Float32:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}, Format: "float"}}
	case reflect.Float64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}, Format: "double"}}
	case reflect.Bool:
		return typed("boolean")
	case reflect.Slice, reflect.Array:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: g.goTypeToSchema(t.Elem()),
			},
		}
	case reflect.Map:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:                 &openapi3.Types{"object"},
				AdditionalProperties: openapi3.AdditionalProperties{Schema: g.goTypeToSchema(t.Elem())},
			},
		}
	case reflect.Ptr:
		schema := g.goTypeToSchema(t.Elem())
		if schema != nil && schema.Value != nil {
			schema.Value.Nullable = true
		}
		return schema
	case reflect.Struct:
		return g.extractSchema(reflect.New(t).Interface())
	default:
		return typed("object")
	}
}

// =============================================================================
// Helpers
// =============================================================================

const (
	jsonAPIMediaType = "application/vnd.api+json"
	jsonMediaType    = "application/json"
)

func typed(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{name}}}
}

func ref(schema string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + schema}
}

func objectSchema(props openapi3.Schemas) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{Type: &openapi3.Types{"object"}, Properties: props},
	}
}

func queryParam(name string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: &openapi3.Parameter{Name: name, In: "query", Schema: typed("integer")},
	}
}

// responses documents a 200 with body plus the given error statuses.
func responses(mediaType string, body *openapi3.SchemaRef, errorStatuses ...int) *openapi3.Responses {
	ok := openapi3.NewResponse().
		WithDescription("OK").
		WithContent(openapi3.Content{mediaType: openapi3.NewMediaType().WithSchemaRef(body)})

	out := openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: ok}))
	for _, status := range errorStatuses {
		errResp := openapi3.NewResponse().WithDescription(http.StatusText(status))
		out.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: errResp})
	}
	return out
}

func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '-' || r == '.' }) {
		b.WriteString(capitalize(part))
	}
	return b.String()
}

// capitalize returns the string with the first letter capitalized.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
