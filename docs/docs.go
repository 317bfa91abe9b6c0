// Package docs registers the swagger document served at /swagger.
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/api/resources": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "List resources",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.ResourceInfo"}}}
                }
            }
        },
        "/api/resources/{resource}/view": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get resource view",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "Case-insensitive text search", "name": "search", "in": "query"},
                    {"type": "string", "description": "Logical tab, sets the category", "name": "tab", "in": "query"},
                    {"type": "string", "description": "Category equality, ALL disables", "name": "category", "in": "query"},
                    {"type": "string", "description": "Status equality, ALL disables", "name": "status", "in": "query"},
                    {"type": "string", "description": "Inclusive lower date bound (YYYY-MM-DD)", "name": "date_from", "in": "query"},
                    {"type": "string", "description": "Inclusive upper date bound (YYYY-MM-DD)", "name": "date_to", "in": "query"},
                    {"type": "number", "description": "Inclusive lower amount bound", "name": "amount_min", "in": "query"},
                    {"type": "number", "description": "Inclusive upper amount bound", "name": "amount_max", "in": "query"},
                    {"enum": ["dateDesc", "dateAsc", "amountDesc", "amountAsc", "nameAsc", "nameDesc", "statusAsc", "statusDesc"], "type": "string", "description": "Sort key", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Zero-based page index", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ViewResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Unknown resource", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/resources/{resource}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Get resource stats",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "Case-insensitive text search", "name": "search", "in": "query"},
                    {"type": "string", "description": "Category equality", "name": "category", "in": "query"},
                    {"type": "string", "description": "Status equality", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatsResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Unknown resource", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/resources/{resource}/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["resources"],
                "summary": "Export resource",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV document", "schema": {"type": "string"}},
                    "404": {"description": "Unknown resource", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/resources/{resource}/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Refresh resource",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RefreshResponse"}},
                    "404": {"description": "Unknown resource", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "Backend fetch failed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/resources/{resource}/records/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Update record",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true},
                    {"type": "string", "description": "Record id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Snapshot sequence the record was read from", "name": "seq", "in": "query"},
                    {"description": "Updated record", "name": "record", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": true}}
                ],
                "responses": {
                    "200": {"description": "Updated record", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid resource name or request body", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Unknown resource or record", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Snapshot changed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/screens": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Open screen",
                "parameters": [
                    {"description": "Screen to open", "name": "screen", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateScreenRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/screens.Screen"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Unknown resource", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/screens/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Get screen view",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/screens.ScreenView"}},
                    "404": {"description": "Screen not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Close screen",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "404": {"description": "Screen not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["screens"],
                "summary": "Change screen",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true},
                    {"description": "Change to apply", "name": "change", "in": "body", "required": true, "schema": {"$ref": "#/definitions/screens.Change"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/screens.ScreenView"}},
                    "400": {"description": "Invalid change", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Screen not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/screens/{id}/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["screens"],
                "summary": "Export screen",
                "parameters": [
                    {"type": "string", "description": "Screen ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV document", "schema": {"type": "string"}},
                    "404": {"description": "Screen not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/badges/unread": {
            "get": {
                "produces": ["application/json"],
                "tags": ["badges"],
                "summary": "Unread notifications badge",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UnreadBadge"}},
                    "404": {"description": "Notifications resource not configured", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "api.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "api.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "resources": {"type": "integer"}, "screens": {"type": "integer"}}},
        "api.CreateScreenRequest": {"type": "object", "required": ["resource"], "properties": {"resource": {"type": "string"}}},
        "api.ResourceInfo": {"type": "object", "properties": {
            "resource": {"type": "string"},
            "categories": {"type": "array", "items": {"type": "string"}},
            "statuses": {"type": "array", "items": {"type": "string"}},
            "sort_keys": {"type": "array", "items": {"type": "string"}},
            "default_sort": {"type": "string"},
            "default_page_size": {"type": "integer"},
            "default_date_from": {"type": "string"},
            "default_date_to": {"type": "string"},
            "status": {"type": "string"},
            "count": {"type": "integer"},
            "seq": {"type": "integer"},
            "fetched_at": {"type": "string"},
            "last_error": {"type": "string"}
        }},
        "api.RefreshResponse": {"type": "object", "properties": {
            "resource": {"type": "string"},
            "status": {"type": "string"},
            "count": {"type": "integer"},
            "seq": {"type": "integer"},
            "fetched_at": {"type": "string"}
        }},
        "api.UnreadBadge": {"type": "object", "properties": {
            "resource": {"type": "string"},
            "unread": {"type": "integer"},
            "status": {"type": "string"},
            "fetched_at": {"type": "string"}
        }},
        "api.CategoryStat": {"type": "object", "properties": {
            "name": {"type": "string"},
            "count": {"type": "integer"},
            "amount": {"type": "number"},
            "percentage": {"type": "number"},
            "count_percentage": {"type": "number"}
        }},
        "api.StatsResponse": {"type": "object", "properties": {
            "resource": {"type": "string"},
            "total_count": {"type": "integer"},
            "total_amount": {"type": "number"},
            "categories": {"type": "array", "items": {"$ref": "#/definitions/api.CategoryStat"}},
            "bounds": {"$ref": "#/definitions/query.Bounds"},
            "tab_counts": {"type": "object", "additionalProperties": {"type": "integer"}},
            "active_filter_count": {"type": "integer"}
        }},
        "api.ViewResponse": {"type": "object", "properties": {
            "resource": {"type": "string"},
            "status": {"type": "string"},
            "seq": {"type": "integer"},
            "fetched_at": {"type": "string"},
            "last_error": {"type": "string"},
            "view": {"$ref": "#/definitions/query.View"},
            "tab_counts": {"type": "object", "additionalProperties": {"type": "integer"}}
        }},
        "query.Bounds": {"type": "object", "properties": {"min": {"type": "number"}, "max": {"type": "number"}}},
        "query.CategoryTotal": {"type": "object", "properties": {"count": {"type": "integer"}, "amount": {"type": "number"}}},
        "query.Aggregate": {"type": "object", "properties": {
            "total_count": {"type": "integer"},
            "total_amount": {"type": "number"},
            "per_category": {"type": "object", "additionalProperties": {"$ref": "#/definitions/query.CategoryTotal"}}
        }},
        "query.View": {"type": "object", "properties": {
            "visible_items": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
            "page_count": {"type": "integer"},
            "page_index": {"type": "integer"},
            "page_size": {"type": "integer"},
            "total_matched": {"type": "integer"},
            "aggregate": {"$ref": "#/definitions/query.Aggregate"},
            "active_filter_count": {"type": "integer"},
            "bounds": {"$ref": "#/definitions/query.Bounds"},
            "sort": {"type": "string"}
        }},
        "screens.Change": {"type": "object", "properties": {
            "reset": {"type": "boolean"},
            "tab": {"type": "string"},
            "refetch": {"type": "boolean"},
            "search": {"type": "string"},
            "category": {"type": "string"},
            "status": {"type": "string"},
            "date_range": {"type": "object", "properties": {"from": {"type": "string"}, "to": {"type": "string"}}},
            "amount_range": {"type": "object", "properties": {"min": {"type": "number"}, "max": {"type": "number"}}},
            "fields": {"type": "object", "additionalProperties": {"type": "string"}},
            "sort": {"type": "string"},
            "page_size": {"type": "integer"},
            "page": {"type": "integer"}
        }},
        "screens.Screen": {"type": "object", "properties": {
            "id": {"type": "string"},
            "resource": {"type": "string"},
            "state": {"type": "object"},
            "created_at": {"type": "string"},
            "last_seen": {"type": "string"}
        }},
        "screens.ScreenView": {"type": "object", "properties": {
            "screen": {"$ref": "#/definitions/screens.Screen"},
            "view": {"$ref": "#/definitions/query.View"},
            "status": {"type": "string"},
            "fetched_at": {"type": "string"},
            "last_error": {"type": "string"},
            "tab_counts": {"type": "object", "additionalProperties": {"type": "integer"}}
        }}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "claimsview API",
	Description:      "Filtered, sorted, paginated and aggregated views over claims backend collections.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
