package domain

import (
	"bytes"
	"fmt"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// descriptorPreamble restricts the following pragmas to the dictionary
// compiler and turns off linking of everything not listed explicitly.
const descriptorPreamble = `#ifdef __CLING__
#pragma link off all globals;
#pragma link off all classes;
#pragma link off all functions;
#pragma link C++ nestedclass;
#pragma link C++ nestedtypedef;

#pragma link C++ namespace ` + m.Namespace + `;
`

const descriptorClose = "#endif\n"

// IncludeLine is the include directive for h under prefix.
func IncludeLine(prefix string, h m.HeaderFile) string {
	return fmt.Sprintf("#include \"%s/%s\"", prefix, h.Name)
}

// RenderDescriptor builds the full descriptor text. Include and link lines
// follow the order of headers one to one.
func RenderDescriptor(res m.Resolution, headers []m.HeaderFile) []byte {
	var buf bytes.Buffer

	for _, h := range headers {
		buf.WriteString(IncludeLine(res.Paths.IncludePrefix, h))
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.WriteString(descriptorPreamble)

	for _, h := range headers {
		buf.WriteString(h.LinkLine(res.Mode))
		buf.WriteByte('\n')
	}

	buf.WriteString(descriptorClose)

	return buf.Bytes()
}
