package build

const Name = "edgefront"

// Version is overridden at link time by the release pipeline.
var Version = "0.1.0"

func NameAndVersion() string {
	return Name + " " + Version
}
