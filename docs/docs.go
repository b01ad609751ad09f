// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service is up", "schema": {"$ref": "#/definitions/handler.HealthStatus"}}
                }
            }
        },
        "/sleep-records": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "List sleep records",
                "responses": {
                    "200": {"description": "Records, newest date first", "schema": {"$ref": "#/definitions/response.Success"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "Create a sleep record",
                "parameters": [
                    {"description": "Record", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CreateSleepRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Success"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/response.Failure"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            }
        },
        "/sleep-records/sleep-statistics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "Aggregate sleep statistics",
                "responses": {
                    "200": {"description": "Statistics", "schema": {"$ref": "#/definitions/response.Success"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            }
        },
        "/sleep-records/badges": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "Badge progress",
                "responses": {
                    "200": {"description": "Badge summary", "schema": {"$ref": "#/definitions/response.Success"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            }
        },
        "/sleep-records/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "Get a sleep record",
                "parameters": [{"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Record", "schema": {"$ref": "#/definitions/response.Success"}},
                    "400": {"description": "Invalid ID", "schema": {"$ref": "#/definitions/response.Failure"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "Update a sleep record",
                "parameters": [
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateSleepRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/response.Success"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/response.Failure"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sleep-records"],
                "summary": "Delete a sleep record",
                "parameters": [{"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/response.Success"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.Failure"}},
                    "500": {"description": "Delete failed", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            }
        },
        "/ai/ai-advice": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Personalised sleep advice",
                "responses": {
                    "200": {"description": "Advice", "schema": {"$ref": "#/definitions/response.Success"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            }
        },
        "/ai/ai-advice/feedback": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["ai"],
                "summary": "Rate a piece of advice",
                "parameters": [
                    {"description": "Rating", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.FeedbackRequest"}}
                ],
                "responses": {
                    "204": {"description": "Recorded"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/response.Failure"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CreateSleepRecordRequest": {
            "type": "object",
            "required": ["date", "hours"],
            "properties": {
                "date": {"type": "string", "example": "2024-01-15"},
                "hours": {"type": "number", "maximum": 24, "minimum": 0, "example": 7.5},
                "note": {"type": "string", "maxLength": 500}
            }
        },
        "domain.UpdateSleepRecordRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-01-15"},
                "hours": {"type": "number", "maximum": 24, "minimum": 0, "example": 8},
                "note": {"type": "string", "maxLength": 500}
            }
        },
        "handler.FeedbackRequest": {
            "type": "object",
            "required": ["traceId", "score"],
            "properties": {
                "traceId": {"type": "string"},
                "score": {"type": "integer", "maximum": 5, "minimum": 1},
                "comment": {"type": "string"}
            }
        },
        "handler.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string", "example": "2024-01-16T07:05:00Z"}
            }
        },
        "response.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.Failure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/response.FieldError"}}
            }
        },
        "response.Success": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Sleep Records API",
	Description:      "Record nightly sleep, review statistics and badges, and get AI sleep advice.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
