// Package docs holds the OpenAPI metadata for the HTTP API.
package docs

import "github.com/swaggo/swag"

// @tag.name Users
// @tag.description Registration, login and the user directory

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Groups
// @tag.description Group management within boards

// @tag.name Items
// @tag.description Item management, timelines and recurring rules

// @tag.name Sub-items
// @tag.description Sub-item management operations

// @tag.name Teams
// @tag.description Team management and bulk assignment

const docTemplate = `{
    "schemes": ["http"],
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
            "in": "header"
        }
    },
    "paths": {}
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Task Manager API",
	Description:      "API for managing boards, groups, items, sub-items, teams and recurring tasks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
