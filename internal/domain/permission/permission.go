// Package permission models roles and the capabilities they grant.
package permission

import (
	"fmt"
	"strings"
)

// Capabilities checked by the helpdesk core.
const (
	CapTicketAssignee = "ticket:assignee"
	CapTicketPublic   = "ticket:public"
	CapTicketCreate   = "ticket:create"
	CapTicketEdit     = "ticket:edit"
	CapTicketView     = "ticket:view"
	CapTicketDelete   = "ticket:delete"
	CapTicketAttach   = "ticket:attachment"
	CapTicketDetach   = "ticket:removeAttachment"
	CapCommentCreate  = "comment:create"
	CapNotesView      = "notes:view"
	CapNotesCreate    = "notes:create"
	CapGroupsManage   = "groups:create"
	CapOrgsManage     = "organizations:create"
	CapArticlesView   = "articles:view"
	CapArticlesEdit   = "articles:edit"
	CapReportsView    = "reports:view"
	CapSettingsManage = "settings:edit"
	CapSystemsManage  = "systems:create"
)

// AllCapabilities lists every capability above.
var AllCapabilities = []string{
	CapTicketAssignee, CapTicketPublic, CapTicketCreate, CapTicketEdit,
	CapTicketView, CapTicketDelete, CapTicketAttach, CapTicketDetach,
	CapCommentCreate, CapNotesView, CapNotesCreate, CapGroupsManage,
	CapOrgsManage, CapArticlesView, CapArticlesEdit, CapReportsView,
	CapSettingsManage, CapSystemsManage,
}

// Checker answers whether a role holds a capability.
type Checker interface {
	CanDo(role, capability string) bool
}

// ParseCapability splits "object:action".
func ParseCapability(capability string) (object, action string, err error) {
	object, action, ok := strings.Cut(capability, ":")
	if !ok || object == "" || action == "" {
		return "", "", fmt.Errorf("invalid capability %q: want object:action", capability)
	}
	return object, action, nil
}

// Policy is one role/object/action grant. "*" matches anything.
type Policy struct {
	Role   string
	Object string
	Action string
}
