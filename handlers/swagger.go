package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r *gin.Engine) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>portfolio-api Swagger</title>
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

// Minimal OpenAPI document covering the most used endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "portfolio-api", "version": "v0.1.0" },
  "paths": {
    "/api/auth/login": {
      "post": { "summary": "Login with email and password", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "token pair returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/api/auth/refresh": {
      "post": { "summary": "Rotate the refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "new token pair" }, "401": { "description": "invalid refresh token" } } }
    },
    "/api/blog": {
      "get": { "summary": "List published blog posts", "responses": { "200": { "description": "paginated post list" } } }
    },
    "/api/blog/{slug}": {
      "get": { "summary": "Read a published post by slug", "responses": { "200": { "description": "post" }, "404": { "description": "not found" } } }
    },
    "/api/projects": {
      "get": { "summary": "List public projects", "responses": { "200": { "description": "paginated project list" } } }
    },
    "/api/testimonials": {
      "get": { "summary": "List approved testimonials", "responses": { "200": { "description": "paginated testimonial list" } } },
      "post": { "summary": "Submit a testimonial for review", "responses": { "201": { "description": "pending testimonial created" }, "422": { "description": "validation error" } } }
    },
    "/api/contact": {
      "post": { "summary": "Send a contact message", "responses": { "201": { "description": "message stored" }, "422": { "description": "validation error" } } }
    },
    "/api/newsletter": {
      "post": { "summary": "Subscribe to the newsletter", "responses": { "201": { "description": "subscribed" }, "409": { "description": "already subscribed" } } }
    },
    "/api/analytics": {
      "post": { "summary": "Record an analytics event", "responses": { "201": { "description": "event recorded" } } }
    },
    "/api/admin/dashboard": {
      "get": { "summary": "Aggregate counts across all resources", "responses": { "200": { "description": "dashboard summary" }, "401": { "description": "admin token required" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
