package assets

var bundledLoader = NewEmbeddedLoader()

// LoadClass returns the bundled source of class name.
func LoadClass(name string) (string, error) {
	return bundledLoader.LoadClass(name)
}

// LoadTemplate returns the bundled letter template name.
func LoadTemplate(name string) (string, error) {
	return bundledLoader.LoadTemplate(name)
}
