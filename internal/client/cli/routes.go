package cli

import (
	"github.com/wheelsapp/wheels-cli/internal/client/guard"
	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

// routes maps each protected command to its allow-list, the way the web
// client mapped route paths to role-restricted views. Commands absent from
// this table are public. An empty role list admits any authenticated user.
var routes = map[string]guard.Route{
	"whoami":       {Name: "whoami"},
	"profile":      {Name: "profile"},
	"logout":       {Name: "logout"},
	"reservations": {Name: "reservations"},
	"r":            {Name: "reservations"},
	"accept":       {Name: "accept", Roles: []models.Role{models.RoleDriver}},
	"decline":      {Name: "decline", Roles: []models.Role{models.RoleDriver}},
	"cancel":       {Name: "cancel", Roles: []models.Role{models.RolePassenger}},
	"createtrip":   {Name: "createtrip", Roles: []models.Role{models.RoleDriver}},
	"car":          {Name: "car", Roles: []models.Role{models.RoleDriver}},
	"setcar":       {Name: "setcar", Roles: []models.Role{models.RoleDriver}},
	"search":       {Name: "search", Roles: []models.Role{models.RolePassenger}},
	"book":         {Name: "book", Roles: []models.Role{models.RolePassenger}},
}
