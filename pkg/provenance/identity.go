package provenance

import (
	"os"
	"os/user"
	"time"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
)

// DateLayout matches the default output of date(1): "Tue Apr 23 10:15:02 UTC 2013".
const DateLayout = "Mon Jan 02 15:04:05 MST 2006"

// userEnvVars are consulted in order before asking the OS account database.
var userEnvVars = []string{"LOGNAME", "USER", "LNAME", "USERNAME"}

// CurrentUser returns the login name of the user running the build.
func CurrentUser() (string, error) {
	for _, key := range userEnvVars {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}

	u, err := user.Current()
	if err != nil {
		return "", scerr.New(pkgName, scerr.CodeInternal, "current_user", "cannot determine build user", err)
	}
	return u.Username, nil
}

// FormatDate renders t in local time using DateLayout.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}
