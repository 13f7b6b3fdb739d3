// Package docs registers the OpenAPI document served by gin-swagger.
// Maintained by hand for the small route surface instead of swag codegen.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    },
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "User registered and token generated"},
                    "400": {"description": "Invalid input or duplicate email"}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in a user",
                "responses": {
                    "200": {"description": "User authenticated and token generated"},
                    "401": {"description": "Wrong password"},
                    "404": {"description": "Unknown email"}
                }
            }
        },
        "/create-budget": {
            "post": {
                "tags": ["budgets"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a budget",
                "responses": {
                    "201": {"description": "Budget created"},
                    "400": {"description": "Invalid input"}
                }
            }
        },
        "/budgets": {
            "get": {
                "tags": ["budgets"],
                "security": [{"BearerAuth": []}],
                "summary": "Get all budgets",
                "responses": {
                    "200": {"description": "Budgets"}
                }
            }
        },
        "/budget/{id}": {
            "get": {
                "tags": ["budgets"],
                "security": [{"BearerAuth": []}],
                "summary": "Get budget by ID",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Budget details"},
                    "404": {"description": "Budget not found"}
                }
            }
        },
        "/edit-budget/{id}": {
            "put": {
                "tags": ["budgets"],
                "security": [{"BearerAuth": []}],
                "summary": "Update budget",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Updated budget"},
                    "400": {"description": "Invalid input or date order violation"},
                    "404": {"description": "Budget not found"}
                }
            }
        },
        "/delete-budget/{id}": {
            "delete": {
                "tags": ["budgets"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete budget",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Deleted budget"},
                    "400": {"description": "Missing owner email"},
                    "404": {"description": "Budget not found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Sparynx Budget API",
	Description:      "Budget tracking backend: accounts, budgets, and email deadline reminders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
