package modelcard

import "runtime/debug"

// Set at build time with
// -ldflags "-X 'github.com/idlab-discover/salarypred-cli/internal/modelcard.version=v1.2.3'".
var version = ""

var readBuildInfo = debug.ReadBuildInfo

// Version is the tool version recorded in generated BOMs.
func Version() string {
	if version != "" && version != "dev" {
		return version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "devel"
}
