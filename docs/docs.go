// Package docs registra la especificación OpenAPI de la API para swag.
// swagger.json se regenera con: swag init -g cmd/api/main.go -o docs --outputTypes json
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

// SwaggerInfo metadatos expuestos por la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Almoxarifado API",
	Description:      "Gestión de almoxarifado: artículos, ubicaciones, movimientos, inventarios y reportes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
