// Package docs holds the swagger document served under /api/docs.
// Regenerate with: swag init -g cmd/wildwatch-api/main.go -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

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
        "/api/auth/login": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "summary": "Operator login",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "credentials",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/auth/session": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                },
                "summary": "Current session",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/detections/stats-box": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Dashboard stat boxes",
                "description": "Totals, average confidence, most detected animal and today's breakdown",
                "tags": [
                    "Detections"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/detections/overview": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Monthly overview",
                "description": "Detections per month for the most recent months, oldest first",
                "tags": [
                    "Detections"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/detections/breakdown": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Species breakdown",
                "tags": [
                    "Detections"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/detections/data": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "All detections, newest first",
                "tags": [
                    "Detections"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/detections/list": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Paginated detection list",
                "tags": [
                    "Detections"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "page",
                        "in": "query",
                        "required": false,
                        "description": "1-based page",
                        "type": "integer"
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "required": false,
                        "description": "page size, max 500",
                        "type": "integer"
                    },
                    {
                        "name": "sort",
                        "in": "query",
                        "required": false,
                        "description": "JSON sort, e.g. {\\",
                        "type": "string"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "required": false,
                        "description": "case-insensitive substring over id, class and time",
                        "type": "string"
                    }
                ]
            }
        },
        "/general/user": {
            "post": {
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                },
                "summary": "Subscribe",
                "tags": [
                    "General"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "subscriber",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/general/user/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Get a subscriber",
                "tags": [
                    "General"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "user id",
                        "type": "string"
                    }
                ]
            }
        },
        "/general/unsubscribe": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "summary": "Unsubscribe",
                "description": "Matches by username or phone number; deleteData removes the record entirely",
                "tags": [
                    "General"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "identity",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/meta/health": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Health check",
                "tags": [
                    "Meta"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/meta/ready": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "503": {
                        "description": "Service Unavailable"
                    }
                },
                "summary": "Readiness probe with dependency checks",
                "description": "503 when Postgres does not answer; unconfigured providers show as skipped",
                "tags": [
                    "Meta"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/meta/version": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Build and version info",
                "tags": [
                    "Meta"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/notifications/sms": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Send an SMS",
                "tags": [
                    "Notifications"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "message",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/notifications/whatsapp": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Send a WhatsApp message",
                "tags": [
                    "Notifications"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "message",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/notifications/users": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Subscribed users with at least one channel on",
                "tags": [
                    "Notifications"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/notifications/twilio-config": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Twilio configuration state",
                "description": "Never includes the account SID or auth token; the sender number is masked",
                "tags": [
                    "Notifications"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/api/upload": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "summary": "Upload a camera video",
                "tags": [
                    "Upload"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "video file",
                        "type": "file"
                    }
                ]
            }
        },
        "/users": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "List all users",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/users/notified": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Users with at least one channel on",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ]
            }
        },
        "/users/{id}": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Get a user",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "user id",
                        "type": "string"
                    }
                ]
            }
        },
        "/users/{id}/notifications": {
            "get": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Notification settings of a user",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "user id",
                        "type": "string"
                    }
                ]
            },
            "patch": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Update notification settings",
                "tags": [
                    "Users"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "user id",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "changes",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/api/webhook/detection": {
            "post": {
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "summary": "Receive a detection",
                "description": "Stores the detection and queues subscriber alerts. Storage failures are logged, not returned",
                "tags": [
                    "Webhook"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "detection",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wildwatch API",
	Description:      "Wildlife camera detections, subscriber alerts and notification relay",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
