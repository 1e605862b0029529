// Package docs holds the swagger spec served at /swagger, kept in sync with
// the handler annotations by hand.
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
        "/api/v1/config": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["站点配置"],
                "summary": "查询站点配置",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["站点配置"],
                "summary": "更新站点配置",
                "parameters": [
                    {"type": "string", "description": "主题色 #rrggbb", "name": "color", "in": "formData"},
                    {"type": "string", "description": "站点标题", "name": "siteTitle", "in": "formData"},
                    {"type": "string", "description": "副标题", "name": "siteSubtitle", "in": "formData"},
                    {"type": "file", "description": "封面图", "name": "coverImage", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/home": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["首页"],
                "summary": "首页数据",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "帖子列表（按 event_date 倒序）",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["帖子"],
                "summary": "发布帖子",
                "parameters": [
                    {"type": "string", "description": "标题", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "内容", "name": "content", "in": "formData"},
                    {"type": "string", "default": "timeline", "description": "timeline 或 wallet", "name": "type", "in": "formData"},
                    {"type": "string", "description": "地点（票根可用 venue/zone/seat）", "name": "location", "in": "formData"},
                    {"type": "string", "description": "场馆", "name": "venue", "in": "formData"},
                    {"type": "string", "description": "区域", "name": "zone", "in": "formData"},
                    {"type": "string", "description": "座位", "name": "seat", "in": "formData"},
                    {"type": "string", "description": "颜色 #rrggbb", "name": "color", "in": "formData"},
                    {"type": "string", "description": "心情", "name": "mood", "in": "formData"},
                    {"type": "string", "description": "活动时间 ISO-8601", "name": "eventDate", "in": "formData"},
                    {"type": "file", "description": "图片", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/posts/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["帖子"],
                "summary": "删除帖子",
                "parameters": [
                    {"type": "string", "description": "帖子ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["系统"],
                "summary": "健康检查",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StarLog API",
	Description:      "追星日記：时间线与票夹",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
