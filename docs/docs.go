// Package docs holds the OpenAPI description served at /swagger. It is
// generated from the handler annotations with `swag init -g cmd/server/main.go`.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign up",
                "parameters": [{"in": "body", "name": "signupRequest", "required": true, "schema": {"$ref": "#/definitions/api.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.AuthResponse"}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "CONFLICT", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "loginRequest", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AuthResponse"}},
                    "401": {"description": "INVALID_CREDENTIALS", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UserResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update profile",
                "parameters": [{"in": "body", "name": "updateUserRequest", "required": true, "schema": {"$ref": "#/definitions/api.UpdateUserRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "409": {"description": "CONFLICT", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete account",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}}
            }
        },
        "/users/me/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Change password",
                "parameters": [{"in": "body", "name": "changePasswordRequest", "required": true, "schema": {"$ref": "#/definitions/api.ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "401": {"description": "INVALID_CREDENTIALS", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["sessions"],
                "summary": "List active sessions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionListResponse"}}}
            }
        },
        "/sessions/{sessionId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["sessions"],
                "summary": "Terminate a specific session",
                "parameters": [{"type": "string", "format": "uuid", "in": "path", "name": "sessionId", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "404": {"description": "NOT_FOUND", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/terminate_all": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["sessions"],
                "summary": "Terminate all sessions (log out everywhere)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TerminateAllResponse"}}}
            }
        },
        "/items": {
            "get": {
                "tags": ["items"],
                "summary": "List items",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "limit"},
                    {"type": "integer", "in": "query", "name": "offset"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ItemListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Create item",
                "parameters": [{"in": "body", "name": "createItemRequest", "required": true, "schema": {"$ref": "#/definitions/api.CreateItemRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.ItemResponse"}}}
            }
        },
        "/items/{itemId}": {
            "get": {
                "tags": ["items"],
                "summary": "Get item",
                "parameters": [{"type": "string", "in": "path", "name": "itemId", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ItemResponse"}},
                    "403": {"description": "FORBIDDEN", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "NOT_FOUND", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Update item",
                "parameters": [
                    {"type": "string", "in": "path", "name": "itemId", "required": true},
                    {"in": "body", "name": "updateItemRequest", "required": true, "schema": {"$ref": "#/definitions/api.UpdateItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ItemResponse"}},
                    "403": {"description": "FORBIDDEN", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Delete item",
                "parameters": [{"type": "string", "in": "path", "name": "itemId", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "403": {"description": "FORBIDDEN", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/items/{itemId}/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["uploads"],
                "summary": "Upload a file to an item",
                "parameters": [
                    {"type": "string", "in": "path", "name": "itemId", "required": true},
                    {"in": "body", "name": "uploadRequest", "required": true, "schema": {"$ref": "#/definitions/api.UploadRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.UploadResponse"}},
                    "413": {"description": "Too large", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "UPSTREAM_ERROR", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/items/{itemId}/uploads": {
            "get": {
                "tags": ["uploads"],
                "summary": "List uploads of an item",
                "parameters": [{"type": "string", "in": "path", "name": "itemId", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.UploadListResponse"}}}
            }
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Get new events",
                "parameters": [{"type": "integer", "in": "query", "name": "since"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EventListResponse"}}}
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string", "example": "Item not found"},
                "code": {"type": "string", "example": "NOT_FOUND"}
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "api.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "a@b.com"},
                "password": {"type": "string", "example": "Test123!"},
                "name": {"type": "string", "example": "A"}
            }
        },
        "api.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "a@b.com"},
                "password": {"type": "string", "example": "Test123!"}
            }
        },
        "api.AuthResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "api.TokenResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "token": {"type": "string"}, "expires_at": {"type": "string"}}
        },
        "api.UserResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "user": {"$ref": "#/definitions/models.User"}}
        },
        "api.UpdateUserRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "avatar_url": {"type": "string"}, "email": {"type": "string"}}
        },
        "api.ChangePasswordRequest": {
            "type": "object",
            "properties": {"current_password": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "api.SessionListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "sessions": {"type": "array", "items": {"$ref": "#/definitions/models.Session"}}
            }
        },
        "api.TerminateAllResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "terminated": {"type": "integer"}}
        },
        "api.CreateItemRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "metadata": {"type": "object"}}
        },
        "api.UpdateItemRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "metadata": {"type": "object"}}
        },
        "api.ItemResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "item": {"$ref": "#/definitions/models.Item"}}
        },
        "api.ItemListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "api.UploadRequest": {
            "type": "object",
            "properties": {"filename": {"type": "string"}, "content_type": {"type": "string"}, "data": {"type": "string"}}
        },
        "api.UploadResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "upload": {"$ref": "#/definitions/models.Upload"}}
        },
        "api.UploadListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "uploads": {"type": "array", "items": {"$ref": "#/definitions/models.Upload"}}
            }
        },
        "api.EventListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/database.Event"}}
            }
        },
        "database.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "event_type": {"type": "string"},
                "event_time": {"type": "string"},
                "payload": {"type": "object"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "display_name": {"type": "string"},
                "avatar_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "last_login": {"type": "string"}
            }
        },
        "models.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_agent": {"type": "string"},
                "client_ip": {"type": "string"},
                "expires_at": {"type": "string"},
                "created_at": {"type": "string"},
                "current": {"type": "boolean"}
            }
        },
        "models.Item": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "user_id": {"type": "integer"},
                "metadata": {"type": "object"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Upload": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "integer"},
                "item_id": {"type": "string"},
                "filename": {"type": "string"},
                "file_url": {"type": "string"},
                "file_size": {"type": "integer"},
                "content_type": {"type": "string"},
                "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Items API",
	Description:      "Session-backed authentication, item CRUD and file uploads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
