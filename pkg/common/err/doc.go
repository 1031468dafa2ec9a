// Package err provides the structured error used across pkginfo.
//
// Each package declares its name as a constant and builds errors with New or
// WrapWithCode:
//
//	const pkgName = "vcs"
//
//	return err.New(pkgName, err.CodePatternNotFound, "revision", "no \"Last Changed Rev\" line", nil)
//
// Callers branch on codes rather than messages:
//
//	if err.IsCode(e, err.CodeUsage) {
//	    os.Exit(2)
//	}
//
// Codes are UPPER_SNAKE_CASE. Errors with the same code match under errors.Is.
package err
