// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Database unreachable", "schema": {"type": "object"}}
                }
            }
        },
        "/api/tracking/today": {
            "get": {
                "tags": ["tracking"],
                "summary": "Today's entry",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Entry"}}
                }
            }
        },
        "/api/tracking/submit": {
            "post": {
                "tags": ["tracking"],
                "summary": "Submit or update a daily entry",
                "description": "entry_date is optional and defaults to today. Returns the saved entry and the number of active days through that date.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "entry", "required": true, "schema": {"$ref": "#/definitions/Entry"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid payload or date", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/tracking/history": {
            "get": {
                "tags": ["tracking"],
                "summary": "Recent entries",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "days", "type": "integer", "description": "Number of entries (default 30)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Entry"}}}
                }
            }
        },
        "/api/tracking/entries/{date}": {
            "get": {
                "tags": ["tracking"],
                "summary": "Entry by date",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "date", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Entry"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/tracking/missing": {
            "get": {
                "tags": ["tracking"],
                "summary": "Missing dates",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/api/analytics/overview": {
            "get": {
                "tags": ["analytics"],
                "summary": "Completion overview",
                "description": "days must be one of 7, 30, 90, 365. Without days, the last window requested in this session is used (default 30).",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "days", "type": "integer", "description": "Window in days"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid window", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/analytics/streaks": {
            "get": {
                "tags": ["analytics"],
                "summary": "Current streaks",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/api/analytics/heatmap": {
            "get": {
                "tags": ["analytics"],
                "summary": "Heat map data",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "year", "type": "integer", "description": "Calendar year (default current year)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/HeatmapDay"}}},
                    "400": {"description": "Invalid year", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/analytics/heatmap.png": {
            "get": {
                "tags": ["analytics"],
                "summary": "Heat map as PNG",
                "produces": ["image/png"],
                "parameters": [
                    {"in": "query", "name": "year", "type": "integer", "description": "Calendar year (default current year)"},
                    {"in": "query", "name": "scale", "type": "integer", "description": "Pixel scale 1-4 (default 1)"}
                ],
                "responses": {
                    "200": {"description": "PNG image", "schema": {"type": "file"}},
                    "400": {"description": "Invalid year or scale", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/analytics/matrix": {
            "get": {
                "tags": ["analytics"],
                "summary": "Goal by date matrix",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "days", "type": "integer", "description": "Window in days (7, 30, 90, 365)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid window", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Notification settings",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            },
            "put": {
                "tags": ["settings"],
                "summary": "Update notification settings",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "settings", "required": true, "schema": {"$ref": "#/definitions/Settings"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/notifications/reminder": {
            "post": {
                "tags": ["notifications"],
                "summary": "Send the daily reminder now",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "502": {"description": "Provider error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/notifications": {
            "get": {
                "tags": ["notifications"],
                "summary": "Recent notifications",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "limit", "type": "integer", "description": "Max rows (default 20)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "Entry": {
            "type": "object",
            "properties": {
                "entry_date": {"type": "string", "example": "2026-01-01"},
                "bed_before_11pm": {"type": "boolean"},
                "eight_hours_sleep": {"type": "boolean"},
                "wake_by_730am": {"type": "boolean"},
                "workout": {"type": "boolean"},
                "ten_k_steps": {"type": "boolean"},
                "read_investing": {"type": "boolean"},
                "read_finance": {"type": "boolean"},
                "read_crypto": {"type": "boolean"},
                "play_with_ai": {"type": "boolean"},
                "reading_books": {"type": "boolean"},
                "posted_twitter": {"type": "boolean"},
                "posted_linkedin": {"type": "boolean"},
                "person_reached_out": {"type": "string"}
            }
        },
        "HeatmapDay": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "count": {"type": "integer"},
                "level": {"type": "integer", "minimum": 0, "maximum": 4}
            }
        },
        "Settings": {
            "type": "object",
            "properties": {
                "whatsapp_to": {"type": "string"},
                "reminders_enabled": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Habit Tracker API",
	Description:      "Daily habit tracking with streaks, overview percentages and heat maps",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
