package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	APITitle       = "Ticket Management API"
	APIDescription = "A sample REST API to manage support tickets"
	APIVersion     = "1.0.0"
)

// RegisterDocs publishes the API description:
// - GET /openapi.json -> machine-readable OpenAPI document
// - GET /docs         -> Swagger UI
// - GET /redoc        -> ReDoc
func RegisterDocs(r gin.IRoutes) {
	r.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(openAPIJSON))
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
	r.GET("/redoc", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(redocHTML))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>` + APITitle + ` - Swagger UI</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const redocHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>` + APITitle + ` - ReDoc</title>
  </head>
  <body>
    <redoc spec-url="/openapi.json"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
  </body>
</html>`

const openAPIJSON = `{
  "openapi": "3.1.0",
  "info": {"title": "` + APITitle + `", "description": "` + APIDescription + `", "version": "` + APIVersion + `"},
  "paths": {
    "/tickets": {
      "get": {
        "summary": "Get Tickets", "description": "Get all tickets", "operationId": "get_tickets_tickets_get",
        "responses": {"200": {"description": "Successful Response", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Ticket"}}}}}}
      },
      "post": {
        "summary": "Create Ticket", "description": "Create a new ticket", "operationId": "create_ticket_tickets_post",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TicketCreate"}}}},
        "responses": {
          "201": {"description": "Successful Response", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Ticket"}}}},
          "422": {"description": "Validation Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HTTPValidationError"}}}}
        }
      }
    },
    "/tickets/{ticket_id}": {
      "get": {
        "summary": "Get Ticket", "description": "Get a ticket by ID", "operationId": "get_ticket_tickets__ticket_id__get",
        "parameters": [{"name": "ticket_id", "in": "path", "required": true, "schema": {"type": "integer", "title": "Ticket Id"}}],
        "responses": {
          "200": {"description": "Successful Response", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Ticket"}}}},
          "404": {"description": "Ticket not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HTTPError"}}}},
          "422": {"description": "Validation Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HTTPValidationError"}}}}
        }
      },
      "put": {
        "summary": "Update Ticket", "description": "Update a ticket", "operationId": "update_ticket_tickets__ticket_id__put",
        "parameters": [{"name": "ticket_id", "in": "path", "required": true, "schema": {"type": "integer", "title": "Ticket Id"}}],
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TicketUpdate"}}}},
        "responses": {
          "200": {"description": "Successful Response", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Ticket"}}}},
          "404": {"description": "Ticket not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HTTPError"}}}},
          "422": {"description": "Validation Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HTTPValidationError"}}}}
        }
      }
    },
    "/health": {"get": {"summary": "Liveness check", "responses": {"200": {"description": "healthy"}}}},
    "/ready": {"get": {"summary": "Readiness check", "responses": {"200": {"description": "ready"}, "503": {"description": "not ready"}}}}
  },
  "components": {
    "schemas": {
      "Ticket": {
        "type": "object", "title": "Ticket", "required": ["id", "title", "description", "status"],
        "properties": {
          "id": {"type": "integer", "title": "Id"},
          "title": {"type": "string", "title": "Title"},
          "description": {"type": "string", "title": "Description"},
          "status": {"type": "string", "title": "Status"}
        }
      },
      "TicketCreate": {
        "type": "object", "title": "TicketCreate", "required": ["title", "description"],
        "properties": {
          "title": {"type": "string", "title": "Title"},
          "description": {"type": "string", "title": "Description"}
        }
      },
      "TicketUpdate": {
        "type": "object", "title": "TicketUpdate",
        "properties": {
          "title": {"anyOf": [{"type": "string"}, {"type": "null"}], "title": "Title"},
          "description": {"anyOf": [{"type": "string"}, {"type": "null"}], "title": "Description"},
          "status": {"anyOf": [{"type": "string"}, {"type": "null"}], "title": "Status"}
        }
      },
      "HTTPError": {
        "type": "object", "title": "HTTPError",
        "properties": {"detail": {"type": "string", "title": "Detail"}}
      },
      "ValidationError": {
        "type": "object", "title": "ValidationError", "required": ["loc", "msg", "type"],
        "properties": {
          "loc": {"type": "array", "items": {"anyOf": [{"type": "string"}, {"type": "integer"}]}, "title": "Location"},
          "msg": {"type": "string", "title": "Message"},
          "type": {"type": "string", "title": "Error Type"}
        }
      },
      "HTTPValidationError": {
        "type": "object", "title": "HTTPValidationError",
        "properties": {"detail": {"type": "array", "items": {"$ref": "#/components/schemas/ValidationError"}, "title": "Detail"}}
      }
    }
  }
}`
