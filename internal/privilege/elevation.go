// Package privilege answers the single question the sweep gates on:
// does the current process run with administrator rights.
package privilege

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// IsElevated reports whether the process token is a member of the
// builtin Administrators group. With UAC this is true only when the
// process was started elevated, not merely by an admin account.
func IsElevated() (bool, error) {
	var adminSid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&adminSid)
	if err != nil {
		return false, fmt.Errorf("allocate administrators SID: %w", err)
	}
	defer windows.FreeSid(adminSid)

	member, err := windows.Token(0).IsMember(adminSid)
	if err != nil {
		return false, fmt.Errorf("query token membership: %w", err)
	}
	return member, nil
}
