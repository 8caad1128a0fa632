package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Working Time Record API",
        "description": "Attendance screenshot recognition and overtime accounting",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Token issuance"},
        {"name": "Recognition", "description": "Punch and stats text extraction"},
        {"name": "Records", "description": "Working time records and monthly summary"},
        {"name": "Calendar", "description": "Workday and rest day classification"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/recognition/punch": {
            "post": {
                "tags": ["Recognition"],
                "summary": "Parse punch text",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParseTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recognition/stats": {
            "post": {
                "tags": ["Recognition"],
                "summary": "Parse monthly stats text",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParseTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recognition/punch/image": {
            "post": {
                "tags": ["Recognition"],
                "summary": "Recognize a punch screenshot",
                "consumes": ["multipart/form-data", "application/octet-stream"],
                "parameters": [
                    {"name": "image", "in": "formData", "type": "file"},
                    {"name": "reference_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Recognition failed"}
                }
            }
        },
        "/recognition/punch/jobs": {
            "post": {
                "tags": ["Recognition"],
                "summary": "Queue a punch screenshot for recognition",
                "consumes": ["multipart/form-data", "application/octet-stream"],
                "parameters": [
                    {"name": "image", "in": "formData", "type": "file"},
                    {"name": "reference_date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recognition/punch/jobs/{id}": {
            "get": {
                "tags": ["Recognition"],
                "summary": "Get recognition job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job"}
                }
            }
        },
        "/records": {
            "get": {
                "tags": ["Records"],
                "summary": "List records",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Records"],
                "summary": "Create record",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/records/{id}": {
            "delete": {
                "tags": ["Records"],
                "summary": "Delete record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/records/summary": {
            "get": {
                "tags": ["Records"],
                "summary": "Monthly overtime summary",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/records/export": {
            "get": {
                "tags": ["Records"],
                "summary": "Export monthly report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/calendar/day/{date}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Classify a date",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/month/{year}/{month}": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month workday outlook",
                "parameters": [
                    {"name": "year", "in": "path", "required": true, "type": "integer"},
                    {"name": "month", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "ParseTextRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "reference_date": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "integer"}
            },
            "required": ["text"]
        },
        "CreateRecordRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"}
            },
            "required": ["date", "start_time", "end_time"]
        },
        "TimeRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "day_type": {"type": "string"},
                "worked_minutes": {"type": "integer"},
                "overtime_minutes": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
