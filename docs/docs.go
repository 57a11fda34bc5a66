// Package docs registra la especificación OpenAPI servida en /docs.
// El template se mantiene a mano junto con las rutas del router.
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
        "/health": {"get": {"tags": ["health"], "summary": "Liveness del BFF", "responses": {"200": {"description": "ok"}}}},
        "/status": {"get": {"tags": ["status"], "summary": "Estado de los microservicios", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/dashboard": {"get": {"tags": ["dashboard"], "summary": "Resumen del dashboard", "produces": ["application/json"],
            "parameters": [{"type": "string", "description": "CSV de fuentes: users,plans,recipes", "name": "sources", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "fuente desconocida"}}}},
        "/users": {
            "get": {"tags": ["users"], "summary": "Listar usuarios", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "role", "in": "query"},
                    {"type": "string", "name": "practitioner_id", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Crear usuario", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "validación"}, "502": {"description": "upstream"}}}
        },
        "/users/{userID}": {
            "get": {"tags": ["users"], "summary": "Obtener usuario", "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "user not found"}}},
            "put": {"tags": ["users"], "summary": "Actualizar usuario", "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["users"], "summary": "Eliminar usuario", "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/practitioners/{userID}/patients": {"get": {"tags": ["users"], "summary": "Listar pacientes de un nutricionista", "parameters": [{"type": "string", "name": "userID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/plans": {
            "get": {"tags": ["plans"], "summary": "Listar planos alimentares", "parameters": [
                {"type": "string", "name": "patient_id", "in": "query"},
                {"type": "string", "name": "practitioner_id", "in": "query"},
                {"type": "string", "name": "q", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["plans"], "summary": "Crear plano", "responses": {"201": {"description": "Created"}}}
        },
        "/plans/stats": {"get": {"tags": ["plans"], "summary": "Estadísticas de planos", "responses": {"200": {"description": "OK"}}}},
        "/plans/{planID}": {
            "get": {"tags": ["plans"], "summary": "Obtener plano con itens", "parameters": [{"type": "string", "name": "planID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "plan not found"}}},
            "put": {"tags": ["plans"], "summary": "Actualizar plano", "parameters": [{"type": "string", "name": "planID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["plans"], "summary": "Eliminar plano", "parameters": [
                {"type": "string", "name": "planID", "in": "path", "required": true},
                {"type": "boolean", "name": "cascade", "in": "query"}
            ], "responses": {"204": {"description": "No Content"}, "409": {"description": "plan has items"}, "503": {"description": "plan items unavailable"}}}
        },
        "/plans/{planID}/items": {
            "get": {"tags": ["plans"], "summary": "Listar itens de un plano", "parameters": [{"type": "string", "name": "planID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["plans"], "summary": "Agregar item a un plano", "parameters": [{"type": "string", "name": "planID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/plan-items/{itemID}": {
            "get": {"tags": ["plans"], "summary": "Obtener item", "parameters": [{"type": "string", "name": "itemID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["plans"], "summary": "Actualizar item", "parameters": [{"type": "string", "name": "itemID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["plans"], "summary": "Eliminar item", "parameters": [{"type": "string", "name": "itemID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/recipes": {
            "get": {"tags": ["recipes"], "summary": "Listar receitas", "parameters": [
                {"type": "string", "name": "patient_id", "in": "query"},
                {"type": "string", "name": "practitioner_id", "in": "query"},
                {"type": "string", "name": "q", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["recipes"], "summary": "Crear receita", "responses": {"201": {"description": "Created"}}}
        },
        "/recipes/stats": {"get": {"tags": ["recipes"], "summary": "Estadísticas de receitas", "responses": {"200": {"description": "OK"}}}},
        "/recipes/{recipeID}": {
            "get": {"tags": ["recipes"], "summary": "Obtener receita", "parameters": [{"type": "string", "name": "recipeID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "recipe not found"}}},
            "put": {"tags": ["recipes"], "summary": "Actualizar receita", "parameters": [{"type": "string", "name": "recipeID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["recipes"], "summary": "Eliminar receita", "parameters": [{"type": "string", "name": "recipeID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NutriPlan Dashboard API",
	Description:      "BFF del dashboard de pacientes, planos alimentares y receitas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
