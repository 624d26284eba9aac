package constants

import (
	_ "embed"
	"encoding/json"
)

type UserPermissions string

const (
	OrgManagePermission UserPermissions = "org:manage"

	UsersReadPermission  UserPermissions = "users:read"
	UsersWritePermission UserPermissions = "users:write"

	HRReadPermission            UserPermissions = "hr:read"
	HRWritePermission           UserPermissions = "hr:write"
	RecruitmentManagePermission UserPermissions = "recruitment:manage"

	ProjectsReadPermission  UserPermissions = "projects:read"
	ProjectsWritePermission UserPermissions = "projects:write"

	FinanceReadPermission  UserPermissions = "finance:read"
	FinanceWritePermission UserPermissions = "finance:write"

	CRMReadPermission  UserPermissions = "crm:read"
	CRMWritePermission UserPermissions = "crm:write"

	LearningManagePermission       UserPermissions = "learning:manage"
	AnnouncementsPublishPermission UserPermissions = "announcements:publish"

	PortalSelfPermission UserPermissions = "portal:self"
)

// Portals a role can be scoped to.
const (
	PortalAdmin     = "admin"
	PortalEmployee  = "employee"
	PortalClient    = "client"
	PortalCandidate = "candidate"
)

type Permission struct {
	Permission  string `json:"permission"`
	Description string `json:"description"`
}

//go:embed data/permissions.json
var permissionsJSON []byte

var Permissions []Permission

func IsValidUserPermission(permission string) bool {
	switch UserPermissions(permission) {
	case OrgManagePermission,
		UsersReadPermission,
		UsersWritePermission,
		HRReadPermission,
		HRWritePermission,
		RecruitmentManagePermission,
		ProjectsReadPermission,
		ProjectsWritePermission,
		FinanceReadPermission,
		FinanceWritePermission,
		CRMReadPermission,
		CRMWritePermission,
		LearningManagePermission,
		AnnouncementsPublishPermission,
		PortalSelfPermission:
		return true
	default:
		return false
	}
}

func IsValidPortal(portal string) bool {
	switch portal {
	case PortalAdmin, PortalEmployee, PortalClient, PortalCandidate:
		return true
	default:
		return false
	}
}

func init() {
	if err := json.Unmarshal(permissionsJSON, &Permissions); err != nil {
		panic("failed to unmarshal permissions JSON: " + err.Error())
	}

	for _, p := range Permissions {
		if !IsValidUserPermission(p.Permission) {
			panic("invalid user permission: " + p.Permission)
		}
	}
}
