// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/healthz": {
            "get": {"produces": ["application/json"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/login": {
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "summary": "Login",
                "parameters": [{"description": "Credentials", "name": "creds", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.Credentials"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.loginResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}}
            }
        },
        "/logout": {
            "post": {"security": [{"ApiKeyAuth": []}], "summary": "Logout", "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}}}
        },
        "/users/": {
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "summary": "Register user",
                "parameters": [{"description": "Credentials", "name": "creds", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.Credentials"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.validationResponse"}}}
            }
        },
        "/purchase_orders/": {
            "get": {
                "security": [{"ApiKeyAuth": []}], "produces": ["application/json"], "summary": "List purchase orders",
                "parameters": [{"type": "string", "description": "Vendor ID", "name": "vendor", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "summary": "Create purchase order",
                "parameters": [{"description": "Purchase order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.Order"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.validationResponse"}}}
            }
        },
        "/purchase_orders/{id}/": {
            "get": {"security": [{"ApiKeyAuth": []}], "summary": "Get purchase order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "summary": "Replace purchase order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.Order"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"ApiKeyAuth": []}], "summary": "Patch purchase order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.Order"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "summary": "Delete purchase order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/purchase_orders/{id}/acknowledge/": {
            "post": {"security": [{"ApiKeyAuth": []}], "summary": "Acknowledge purchase order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.messageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}}}
        },
        "/vendors/": {
            "get": {"security": [{"ApiKeyAuth": []}], "summary": "List vendors", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/vendor.Vendor"}}}}},
            "post": {"security": [{"ApiKeyAuth": []}], "summary": "Create vendor", "parameters": [{"name": "vendor", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vendor.Profile"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/vendor.Vendor"}}, "400": {"description": "Bad Request"}}}
        },
        "/vendors/{id}/": {
            "get": {"security": [{"ApiKeyAuth": []}], "summary": "Get vendor", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/vendor.Vendor"}}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "summary": "Replace vendor", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "vendor", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vendor.Profile"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"ApiKeyAuth": []}], "summary": "Patch vendor", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "vendor", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vendor.Profile"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "summary": "Delete vendor", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/vendors/{id}/performance/": {
            "get": {"security": [{"ApiKeyAuth": []}], "summary": "Vendor performance", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/vendor.Metrics"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}}}
        }
    },
    "definitions": {
        "api.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "api.loginResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "api.messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "api.validationResponse": {"type": "object", "properties": {"errors": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "auth.Credentials": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "order.Order": {
            "type": "object",
            "required": ["po_number", "expected_delivery_date", "status"],
            "properties": {
                "id": {"type": "string"},
                "po_number": {"type": "string"},
                "vendor": {"type": "string"},
                "order_date": {"type": "string"},
                "expected_delivery_date": {"type": "string"},
                "delivery_date": {"type": "string"},
                "items": {"type": "object"},
                "quantity": {"type": "integer"},
                "status": {"type": "string"},
                "quality_rating": {"type": "number"},
                "issue_date": {"type": "string"},
                "acknowledgment_date": {"type": "string"}
            }
        },
        "vendor.Metrics": {
            "type": "object",
            "properties": {
                "on_time_delivery_rate": {"type": "number"},
                "quality_rating_avg": {"type": "number"},
                "average_response_time": {"type": "number"},
                "fulfillment_rate": {"type": "number"}
            }
        },
        "vendor.Profile": {
            "type": "object",
            "required": ["name", "vendor_code"],
            "properties": {
                "name": {"type": "string"},
                "contact_details": {"type": "string"},
                "address": {"type": "string"},
                "vendor_code": {"type": "string"}
            }
        },
        "vendor.Vendor": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "contact_details": {"type": "string"},
                "address": {"type": "string"},
                "vendor_code": {"type": "string"},
                "on_time_delivery_rate": {"type": "number"},
                "quality_rating_avg": {"type": "number"},
                "average_response_time": {"type": "number"},
                "fulfillment_rate": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8443",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "VendorFlow API",
	Description:      "API for managing vendors, purchase orders and vendor performance",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
