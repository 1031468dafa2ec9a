package provenance

import (
	"bytes"
	"io"
	"text/template"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
)

const pkgName = "provenance"

// DefaultOutputName is the file written into the build directory.
const DefaultOutputName = "package-info.java"

// Record is the provenance of one build. It is filled once and only read afterwards.
type Record struct {
	Annotation  string
	Version     string
	Revision    string
	User        string
	Date        string
	URL         string
	SrcChecksum string
	Package     string
}

// packageInfo is the artifact layout consumed by the surrounding build.
// Values are inserted verbatim: callers must keep quotes and backslashes out
// of them.
const packageInfo = `/*
 * Generated by pkginfo
 */
{{.Annotation}}(version="{{.Version}}", revision="{{.Revision}}",
  user="{{.User}}", date="{{.Date}}", url="{{.URL}}",
  srcChecksum="{{.SrcChecksum}}")
package {{.Package}};
`

var packageInfoTemplate = template.Must(template.New("package-info").Parse(packageInfo))

// Render writes the record in the package-info layout to w.
func (r Record) Render(w io.Writer) error {
	if err := packageInfoTemplate.Execute(w, r); err != nil {
		return scerr.New(pkgName, scerr.CodeInternal, "render", "", err)
	}
	return nil
}

// Bytes renders the record into memory.
func (r Record) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
