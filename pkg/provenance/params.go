package provenance

import (
	"fmt"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
)

// ArgCount is the number of positional arguments the generator takes.
const ArgCount = 5

// Params are the positional arguments of one invocation, in order.
type Params struct {
	Annotation   string
	Version      string
	ChecksumRoot string
	Package      string
	BuildDir     string
}

// ParseParams maps exactly ArgCount positional arguments onto Params.
func ParseParams(args []string) (Params, error) {
	if len(args) != ArgCount {
		return Params{}, scerr.New(pkgName, scerr.CodeUsage, "parse_args",
			fmt.Sprintf("expected %d arguments, got %d", ArgCount, len(args)), nil)
	}
	return Params{
		Annotation:   args[0],
		Version:      args[1],
		ChecksumRoot: args[2],
		Package:      args[3],
		BuildDir:     args[4],
	}, nil
}
