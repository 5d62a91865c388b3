// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/v1/tracking": {
            "get": {
                "tags": ["tracking"],
                "summary": "Track a shipment",
                "parameters": [{"type": "string", "name": "code", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/tracking/{code}/stream": {
            "get": {
                "tags": ["tracking"],
                "summary": "Live tracking progress",
                "produces": ["text/event-stream"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/auth/sign-in": {
            "post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/sign-out": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/session": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current session", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/password-reset": {
            "post": {"tags": ["auth"], "summary": "Request a password reset", "responses": {"202": {"description": "Accepted"}}}
        },
        "/auth/password-reset/confirm": {
            "post": {"tags": ["auth"], "summary": "Confirm a password reset", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/admin/shipments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List shipments", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create a shipment", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/admin/shipments/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Get a shipment", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Update a shipment", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete a shipment and its timeline", "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/admin/shipments/{id}/timeline": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Full shipment timeline, newest first", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Append a timeline entry", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/admin/currencies": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Supported currencies", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/admin/invoices/preview": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["invoices"], "summary": "Preview invoice totals", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/admin/invoices/pdf": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["invoices"], "summary": "Download an invoice", "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SwiftEx Tracking API",
	Description:      "Shipment tracking with live progress, administration and invoicing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
