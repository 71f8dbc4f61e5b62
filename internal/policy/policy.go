// Package policy holds the per-resource, per-action, per-role permission
// table. Every service operation calls Allow before touching the datastore,
// with the caller passed explicitly (nil means anonymous).
package policy

import (
	"bus_booking/internal/apperr"
	"bus_booking/internal/models"
)

type Resource string

const (
	ResourceRoute  Resource = "route"
	ResourceBus    Resource = "bus"
	ResourceSeat   Resource = "seat"
	ResourceTrip   Resource = "trip"
	ResourceTicket Resource = "ticket"
	ResourceUser   Resource = "user"
)

type Action string

const (
	ActionList   Action = "list"
	ActionDetail Action = "detail"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// public actions pass for any caller, authenticated or not.
var public = map[Resource]map[Action]bool{
	ResourceRoute: {ActionList: true, ActionDetail: true},
	ResourceBus:   {ActionDetail: true},
	ResourceTrip:  {ActionList: true, ActionDetail: true},
}

// roles lists which roles may perform a non-public action. Absent entries
// are denied for everyone; seats and tickets are only ever created as fan-out
// side effects, so no role may create them.
var roles = map[Resource]map[Action][]string{
	ResourceRoute: {
		ActionCreate: {models.RoleAdmin},
		ActionUpdate: {models.RoleAdmin},
		ActionDelete: {models.RoleAdmin},
	},
	ResourceBus: {
		ActionList:   {models.RoleAdmin},
		ActionCreate: {models.RoleAdmin},
		ActionUpdate: {models.RoleAdmin},
		ActionDelete: {models.RoleAdmin},
	},
	ResourceSeat: {
		ActionList:   {models.RolePassenger},
		ActionDetail: {models.RolePassenger},
	},
	ResourceTrip: {
		ActionCreate: {models.RoleAdmin},
		ActionUpdate: {models.RoleAdmin},
		ActionDelete: {models.RoleAdmin},
	},
	ResourceTicket: {
		ActionList:   {models.RolePassenger},
		ActionDetail: {models.RolePassenger},
		ActionUpdate: {models.RolePassenger}, // the reserve transition only
	},
	ResourceUser: {
		ActionList:   {models.RoleAdmin},
		ActionDetail: {models.RoleAdmin, models.RolePassenger, models.RoleDriver},
		ActionUpdate: {models.RoleAdmin, models.RolePassenger, models.RoleDriver},
	},
}

// Allow gates action on resource for caller. Order matters: public actions
// never require authentication, an anonymous caller on anything else is
// unauthenticated (401), and an authenticated caller in the wrong role is
// forbidden (403).
func Allow(caller *models.User, resource Resource, action Action) error {
	if public[resource][action] {
		return nil
	}
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	for _, role := range roles[resource][action] {
		if caller.Role == role {
			return nil
		}
	}
	return apperr.ErrForbidden
}

// AllowSelf is the object-level predicate for profile access: only the
// account itself may read or change it, regardless of role.
func AllowSelf(caller *models.User, targetID uint) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	if caller.ID != targetID {
		return apperr.ErrForbidden
	}
	return nil
}
