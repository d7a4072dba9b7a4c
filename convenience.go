package confstack

// Load resolves the configuration into target with a single call,
// consulting the process arguments and environment. It returns structured
// errors for embedding callers; command-line tools that want conventional
// exit-on-error behavior use MustLoad instead.
//
// configID and fileName locate the configuration file under the user and
// system configuration directories; pass empty strings to skip file support.
// section names the file section overlaid on DEFAULT.
func Load(target any, description, configID, fileName, section string) error {
	return NewBuilder().
		WithDescription(description).
		WithConfigID(configID).
		WithConfigFileName(fileName).
		WithSection(section).
		Load(target)
}

// MustLoad is Load with the conventional command-line tool boundary: on
// failure the report is printed to stderr and the process exits non-zero.
func MustLoad(target any, description, configID, fileName, section string) {
	NewBuilder().
		WithDescription(description).
		WithConfigID(configID).
		WithConfigFileName(fileName).
		WithSection(section).
		MustLoad(target)
}
