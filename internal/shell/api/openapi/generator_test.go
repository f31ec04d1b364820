package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID       string            `json:"-"`
	Title    string            `json:"title"`
	Price    *float64          `json:"price,omitempty"`
	Tags     []string          `json:"tags"`
	Labels   map[string]string `json:"labels"`
	Created  time.Time         `json:"created_at"`
	internal int
}

type pingRequest struct {
	Email string `json:"email"`
}

type pingResponse struct {
	OK bool `json:"ok"`
}

func newTestGenerator() *Generator {
	g := NewGenerator(
		WithTitle("Test API"),
		WithVersion("2.0.0"),
		WithDescription("test"),
		WithServer("/"),
	)
	g.RegisterResource(ResourceInfo{Name: "widgets", Singular: "Widget", Model: widget{}})
	g.RegisterEndpoint(EndpointInfo{
		Method:   http.MethodPost,
		Path:     "/api/ping",
		Summary:  "Ping",
		Tag:      "Ping",
		Request:  pingRequest{},
		Response: pingResponse{},
		Statuses: []int{http.StatusBadRequest},
	})
	return g
}

func TestGenerate_Info(t *testing.T) {
	spec := newTestGenerator().Generate()

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, "Test API", spec.Info.Title)
	assert.Equal(t, "2.0.0", spec.Info.Version)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "/", spec.Servers[0].URL)
}

func TestGenerate_ResourceIsReadOnly(t *testing.T) {
	spec := newTestGenerator().Generate()

	collection := spec.Paths.Value("/api/v1/widgets")
	require.NotNil(t, collection)
	assert.NotNil(t, collection.Get)
	assert.Nil(t, collection.Post)

	item := spec.Paths.Value("/api/v1/widgets/{id}")
	require.NotNil(t, item)
	assert.NotNil(t, item.Get)
	assert.Nil(t, item.Patch)
	assert.Nil(t, item.Delete)
	assert.NotNil(t, item.Get.Responses.Value("404"))
}

func TestGenerate_AttributesFromJSONTags(t *testing.T) {
	spec := newTestGenerator().Generate()

	attrs := spec.Components.Schemas["WidgetAttributes"]
	require.NotNil(t, attrs)
	props := attrs.Value.Properties

	assert.Contains(t, props, "title")
	assert.Contains(t, props, "tags")
	assert.Contains(t, props, "labels")
	assert.NotContains(t, props, "ID")
	assert.NotContains(t, props, "internal")

	assert.True(t, props["price"].Value.Nullable)
	assert.Equal(t, "date-time", props["created_at"].Value.Format)
	assert.True(t, props["tags"].Value.Type.Is("array"))
}

func TestGenerate_Endpoint(t *testing.T) {
	spec := newTestGenerator().Generate()

	item := spec.Paths.Value("/api/ping")
	require.NotNil(t, item)
	require.NotNil(t, item.Post)
	assert.Equal(t, "postApiPing", item.Post.OperationID)
	assert.NotNil(t, item.Post.RequestBody)
	assert.NotNil(t, item.Post.Responses.Value("200"))
	assert.NotNil(t, item.Post.Responses.Value("400"))
}

func TestGenerate_CachedUntilRegistration(t *testing.T) {
	g := newTestGenerator()
	first := g.Generate()
	assert.Same(t, first, g.Generate())

	g.RegisterResource(ResourceInfo{Name: "gadgets", Model: widget{}})
	second := g.Generate()
	assert.NotSame(t, first, second)
	assert.NotNil(t, second.Paths.Value("/api/v1/gadgets"))
	assert.Contains(t, second.Components.Schemas, "GadgetsAttributes")
}

func TestHandler_ServesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestGenerator().Handler()(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/api/v1/widgets")
}
