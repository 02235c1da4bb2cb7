// Package docs holds the swagger description served at /swagger/.
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
        "/api/clinic": {
            "get": {
                "produces": ["application/json"],
                "tags": ["site"],
                "summary": "Каталог клиники",
                "responses": {"200": {"description": "clinic"}}
            }
        },
        "/api/registrations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Отправить заявку на пробную тренировку",
                "parameters": [
                    {"type": "string", "description": "Idempotency key of this submit", "name": "X-Submission-Key", "in": "header"},
                    {"description": "Registration draft", "name": "input", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "registration, notice, optional checkoutToken/checkoutUrl"},
                    "400": {"description": "Malformed body"},
                    "409": {"description": "Same submission already in progress"},
                    "422": {"description": "Field errors"},
                    "502": {"description": "Registrations API rejected the submission"},
                    "503": {"description": "Registrations API unreachable"}
                }
            }
        },
        "/api/checkout/intent": {
            "post": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Создать платёжное намерение",
                "parameters": [
                    {"type": "string", "description": "Checkout token", "name": "X-Checkout-Token", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "clientSecret, state, amount, currency, returnUrl"},
                    "400": {"description": "Invalid amount"},
                    "401": {"description": "Missing or invalid checkout token"},
                    "502": {"description": "Payments API rejected the request"}
                }
            }
        },
        "/api/checkout/confirmation": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Передать результат подтверждения платежа",
                "parameters": [
                    {"type": "string", "description": "Checkout token", "name": "X-Checkout-Token", "in": "header", "required": true},
                    {"description": "Client secret and widget result", "name": "input", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "payment view, optional redirect"},
                    "400": {"description": "Malformed body"},
                    "401": {"description": "Missing or invalid checkout token"},
                    "409": {"description": "Confirmation already in progress"}
                }
            }
        },
        "/payment-success/receipt": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["receipts"],
                "summary": "Скачать квитанцию",
                "parameters": [
                    {"type": "string", "description": "Payment intent id", "name": "payment_intent", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "payment-receipt-<unix ms>.txt"}}
            }
        },
        "/payment-success/receipt/archive": {
            "post": {
                "produces": ["application/json"],
                "tags": ["receipts"],
                "summary": "Сохранить копию квитанции",
                "parameters": [
                    {"type": "string", "description": "Payment intent id", "name": "payment_intent", "in": "query", "required": true}
                ],
                "responses": {
                    "201": {"description": "receipt upload result"},
                    "400": {"description": "Missing payment reference"},
                    "503": {"description": "Archive storage not configured"}
                }
            }
        },
        "/api/admin/registrations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Список заявок",
                "parameters": [
                    {"type": "integer", "description": "Page, from 1", "name": "page", "in": "query"},
                    {"type": "string", "description": "Search text", "name": "search", "in": "query"},
                    {"type": "string", "description": "pending, confirmed or cancelled", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "view"},
                    "400": {"description": "Invalid filter"},
                    "502": {"description": "Registrations API rejected the request"}
                }
            }
        },
        "/api/admin/payment-audit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Журнал платежей",
                "parameters": [
                    {"type": "string", "description": "Comma-separated outcomes", "name": "outcome", "in": "query"},
                    {"type": "integer", "description": "Max entries (default 50, max 200)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "entries"},
                    "400": {"description": "Invalid outcome or limit"}
                }
            }
        },
        "/api/admin/registrations/{id}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Изменить статус заявки",
                "parameters": [
                    {"type": "string", "description": "Registration ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "input", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "view after reload"},
                    "400": {"description": "Invalid status"},
                    "404": {"description": "Registration not found"}
                }
            }
        },
        "/api/admin/registrations/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Удалить заявку",
                "parameters": [
                    {"type": "string", "description": "Registration ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Operator confirmed the deletion", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "view after reload"},
                    "400": {"description": "Not confirmed"},
                    "404": {"description": "Registration not found"}
                }
            }
        },
        "/api/admin/registrations/export.csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["admin"],
                "summary": "Выгрузить текущую страницу в CSV",
                "responses": {"200": {"description": "tournament-registrations-YYYY-MM-DD.csv"}}
            }
        },
        "/api/admin/registrations/export": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Сохранить выгрузку в хранилище",
                "responses": {
                    "201": {"description": "export upload result"},
                    "503": {"description": "Archive storage not configured"}
                }
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
	Title:            "Football Clinic API",
	Description:      "Registration, checkout and admin endpoints of the football clinic site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
