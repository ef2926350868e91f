package report

import "github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"

var errInvalidRange = domain.NewValidationError("from", "from debe ser anterior a to")
