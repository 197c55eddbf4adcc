package utils

import (
	"net/http"

	"greennest/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRolesFromRequest(r *http.Request) []string {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	if !ok {
		return nil
	}
	return roles
}

func IsAdminRequest(r *http.Request) bool {
	for _, role := range GetRolesFromRequest(r) {
		if role == "admin" {
			return true
		}
	}
	return false
}
