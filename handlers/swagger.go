package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the terms service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>termspage — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "termspage", "version": "v1.0.0" },
  "paths": {
    "/api/terms": {
      "get": {
        "summary": "Terms of Service by language",
        "parameters": [
          { "name": "lang", "in": "query", "required": false, "description": "Language code; only the first two characters are used (default sv)", "schema": { "type": "string" } }
        ],
        "responses": {
          "200": { "description": "terms", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Terms" } } } },
          "404": { "description": "no terms for the language", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } },
          "500": { "description": "database error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } }
        }
      },
      "options": { "summary": "CORS preflight", "responses": { "200": { "description": "empty" } } }
    },
    "/api/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "{\"ok\": true}" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  },
  "components": {
    "schemas": {
      "Section": { "type": "object", "properties": { "slug": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"} } },
      "Terms": { "type": "object", "properties": { "lang": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string", "description": "trusted HTML"}, "sections": { "type": "array", "items": { "$ref": "#/components/schemas/Section" } } } },
      "Error": { "type": "object", "properties": { "error": {"type":"string"} } }
    }
  }
}`
