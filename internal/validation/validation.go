// Package validation checks request payloads field by field. Each function
// returns every failure in field order; an empty result means the payload is
// accepted.
package validation

import (
	"strings"

	"github.com/minimal-api/internal/model"
)

// MinVehicleYear is the oldest model year accepted for a vehicle.
const MinVehicleYear = 1950

const (
	MsgEmailRequired    = "email não pode ser vazio!"
	MsgPasswordRequired = "senha não pode ser vazia!"
	MsgRoleRequired     = "Perfil não pode ser vazio!"
	MsgRoleInvalid      = "Perfil inválido, use Adm ou Editor!"
	MsgNameRequired     = "o nome não pode ser vazio"
	MsgBrandRequired    = "a marca não pode ser vazia"
	MsgVehicleTooOld    = "veiculo muito antigo, aceito somente anos superiores a 1950"
)

// Administrator validates an administrator creation payload.
func Administrator(req model.AdministratorRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Email) == "" {
		msgs = append(msgs, MsgEmailRequired)
	}
	if req.Password == "" {
		msgs = append(msgs, MsgPasswordRequired)
	}
	switch {
	case req.Role == nil || strings.TrimSpace(*req.Role) == "":
		msgs = append(msgs, MsgRoleRequired)
	default:
		if _, ok := model.ParseRole(*req.Role); !ok {
			msgs = append(msgs, MsgRoleInvalid)
		}
	}
	return msgs
}

// Vehicle validates a vehicle creation or update payload.
func Vehicle(req model.VehicleRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, MsgNameRequired)
	}
	if strings.TrimSpace(req.Brand) == "" {
		msgs = append(msgs, MsgBrandRequired)
	}
	if req.Year < MinVehicleYear {
		msgs = append(msgs, MsgVehicleTooOld)
	}
	return msgs
}
